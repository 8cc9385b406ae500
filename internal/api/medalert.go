package api

import (
	"context"
	"sync"

	"github.com/swasthaai/swastha-cli/internal/medalert"
)

// ListCategories fetches all categories. Bearer authenticated.
func (c *Client) ListCategories(ctx context.Context) ([]medalert.Category, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/medalert/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []medalert.Category
	if err := parseResponse(resp, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns the stored entity.
func (c *Client) CreateCategory(ctx context.Context, input medalert.CategoryInput) (*medalert.Category, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/medalert/categories", input)
	if err != nil {
		return nil, err
	}

	var category medalert.Category
	if err := parseResponse(resp, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates the category with the given id.
func (c *Client) UpdateCategory(ctx context.Context, id string, input medalert.CategoryInput) (*medalert.Category, error) {
	resp, err := c.doRequest(ctx, "PUT", "/api/medalert/categories/"+id, input)
	if err != nil {
		return nil, err
	}

	var category medalert.Category
	if err := parseResponse(resp, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes the category with the given id.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, "DELETE", "/api/medalert/categories/"+id, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// ListReminders fetches all reminders. Bearer authenticated.
func (c *Client) ListReminders(ctx context.Context) ([]medalert.Reminder, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/medalert/reminders", nil)
	if err != nil {
		return nil, err
	}

	var reminders []medalert.Reminder
	if err := parseResponse(resp, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder creates a reminder and returns the stored entity.
func (c *Client) CreateReminder(ctx context.Context, input medalert.ReminderInput) (*medalert.Reminder, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/medalert/reminders", input)
	if err != nil {
		return nil, err
	}

	var reminder medalert.Reminder
	if err := parseResponse(resp, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// UpdateReminder updates the reminder with the given id.
func (c *Client) UpdateReminder(ctx context.Context, id string, input medalert.ReminderInput) (*medalert.Reminder, error) {
	resp, err := c.doRequest(ctx, "PUT", "/api/medalert/reminders/"+id, input)
	if err != nil {
		return nil, err
	}

	var reminder medalert.Reminder
	if err := parseResponse(resp, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// DeleteReminder deletes the reminder with the given id.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, "DELETE", "/api/medalert/reminders/"+id, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// PauseReminder toggles the pause state of a reminder and returns the
// updated entity.
func (c *Client) PauseReminder(ctx context.Context, id string) (*medalert.Reminder, error) {
	resp, err := c.doRequest(ctx, "PUT", "/api/medalert/reminders/"+id+"/pause", nil)
	if err != nil {
		return nil, err
	}

	var reminder medalert.Reminder
	if err := parseResponse(resp, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// FetchMedAlerts issues the category and reminder fetches concurrently and
// waits for both. No completion order is guaranteed between them; the first
// failure is returned and no partial result is produced.
func (c *Client) FetchMedAlerts(ctx context.Context) ([]medalert.Category, []medalert.Reminder, error) {
	var (
		wg         sync.WaitGroup
		categories []medalert.Category
		reminders  []medalert.Reminder
		catErr     error
		remErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		categories, catErr = c.ListCategories(ctx)
	}()
	go func() {
		defer wg.Done()
		reminders, remErr = c.ListReminders(ctx)
	}()
	wg.Wait()

	if catErr != nil {
		return nil, nil, catErr
	}
	if remErr != nil {
		return nil, nil, remErr
	}
	return categories, reminders, nil
}
