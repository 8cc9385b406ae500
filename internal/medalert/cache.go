package medalert

import "sync"

// Cache mirrors the last successful fetch of categories and reminders.
// Mutations are optimistic local splices performed after the corresponding
// backend call succeeds; the next full fetch replaces the mirror wholesale.
type Cache struct {
	mu         sync.RWMutex
	categories []Category
	reminders  []Reminder
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// SetCategories replaces the cached category list.
func (c *Cache) SetCategories(categories []Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = append([]Category(nil), categories...)
}

// SetReminders replaces the cached reminder list.
func (c *Cache) SetReminders(reminders []Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reminders = append([]Reminder(nil), reminders...)
}

// Categories returns a copy of the cached category list, order preserved.
func (c *Cache) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Category(nil), c.categories...)
}

// Reminders returns a copy of the cached reminder list, order preserved.
func (c *Cache) Reminders() []Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Reminder(nil), c.reminders...)
}

// AddCategory appends a newly created category.
func (c *Cache) AddCategory(category Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = append(c.categories, category)
}

// UpdateCategory replaces the category with a matching id in place.
func (c *Cache) UpdateCategory(category Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.categories {
		if c.categories[i].ID == category.ID {
			c.categories[i] = category
			return
		}
	}
}

// RemoveCategory removes exactly one entry matching id, leaving all others'
// order unchanged. Removing an unknown id is a no-op.
func (c *Cache) RemoveCategory(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories = append(c.categories[:i], c.categories[i+1:]...)
			return
		}
	}
}

// AddReminder appends a newly created reminder.
func (c *Cache) AddReminder(reminder Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reminders = append(c.reminders, reminder)
}

// UpdateReminder replaces the reminder with a matching id in place.
func (c *Cache) UpdateReminder(reminder Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.reminders {
		if c.reminders[i].ID == reminder.ID {
			c.reminders[i] = reminder
			return
		}
	}
}

// RemoveReminder removes exactly one entry matching id, order preserved.
func (c *Cache) RemoveReminder(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.reminders {
		if c.reminders[i].ID == id {
			c.reminders = append(c.reminders[:i], c.reminders[i+1:]...)
			return
		}
	}
}
