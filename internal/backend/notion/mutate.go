package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ntask/internal/clock"
	"ntask/internal/service"
)

// propertyInput is the write-side shape of a page property.
type propertyInput struct {
	Title  []textInput `json:"title,omitempty"`
	Date   *dateInput  `json:"date,omitempty"`
	Status *nameInput  `json:"status,omitempty"`
	Files  []fileInput `json:"files,omitempty"`
}

type textInput struct {
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type dateInput struct {
	Start string `json:"start"`
}

type nameInput struct {
	Name string `json:"name"`
}

type fileInput struct {
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	External externalFile `json:"external"`
}

type externalFile struct {
	URL string `json:"url"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     parentRef                `json:"parent"`
	Properties map[string]propertyInput `json:"properties"`
}

type updatePageRequest struct {
	Properties map[string]propertyInput `json:"properties"`
}

type pageResponse struct {
	ID string `json:"id"`
}

func titleInput(s string) propertyInput {
	return propertyInput{Title: []textInput{{Text: textContent{Content: s}}}}
}

func dateValue(s string) propertyInput {
	return propertyInput{Date: &dateInput{Start: s}}
}

func statusValue(s string) propertyInput {
	return propertyInput{Status: &nameInput{Name: s}}
}

// CreateTask creates a page in the task database and returns its id.
func (c *Client) CreateTask(ctx context.Context, t service.NewTask) (string, error) {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return "", &service.InvalidTaskError{Field: "title", Reason: "is required"}
	}
	if t.Date == "" {
		return "", &service.InvalidTaskError{Field: "date", Reason: "is required"}
	}
	date, err := c.resolveDate(t.Date)
	if err != nil {
		return "", err
	}
	status := t.Status
	if status == "" {
		status = service.DefaultStatus
	}

	req := createPageRequest{
		Parent: parentRef{DatabaseID: c.databaseID},
		Properties: map[string]propertyInput{
			c.schema.Title:  titleInput(title),
			c.schema.Date:   dateValue(date),
			c.schema.Status: statusValue(status),
		},
	}
	return c.createPage(ctx, "create", req)
}

// UpdateTask patches the supplied fields of a task. Empty fields are ignored;
// when nothing remains, no request is sent and NoOp is returned.
func (c *Client) UpdateTask(ctx context.Context, id string, p service.TaskPatch) (service.UpdateResult, error) {
	props := make(map[string]propertyInput)

	if service.IsSet(p.Title) {
		props[c.schema.Title] = titleInput(*p.Title)
	}
	if service.IsSet(p.Date) {
		date, err := c.resolveDate(*p.Date)
		if err != nil {
			return service.NoOp, err
		}
		props[c.schema.Date] = dateValue(date)
	}
	if service.IsSet(p.Status) {
		props[c.schema.Status] = statusValue(*p.Status)
	}

	if len(props) == 0 {
		return service.NoOp, nil
	}
	if strings.TrimSpace(id) == "" {
		return service.NoOp, &service.InvalidTaskError{Field: "id", Reason: "is required"}
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status, body, err := c.do(ctx, http.MethodPatch, "/pages/"+url.PathEscape(id), updatePageRequest{Properties: props})
	if err != nil {
		return service.NoOp, err
	}
	if status != http.StatusOK {
		return service.NoOp, &service.StoreWriteError{Op: "update", StatusCode: status, Body: string(body)}
	}

	c.log.Debug().Str("id", id).Int("fields", len(props)).Msg("task updated")
	return service.Updated, nil
}

// AttachMedia creates a page in the media database linking an external file,
// titled by the caption and dated today.
func (c *Client) AttachMedia(ctx context.Context, m service.MediaAttachment) (string, error) {
	target := m.TargetID
	if target == "" {
		target = c.mediaDatabaseID
	}
	if target == "" {
		return "", &service.InvalidTaskError{Field: "target", Reason: "media database is not configured"}
	}
	if strings.TrimSpace(m.URL) == "" {
		return "", &service.InvalidTaskError{Field: "url", Reason: "is required"}
	}

	title := m.Caption
	fileName := m.Caption
	if title == "" {
		title = untitled
		fileName = "image"
	}

	req := createPageRequest{
		Parent: parentRef{DatabaseID: target},
		Properties: map[string]propertyInput{
			mediaCaptionProperty: titleInput(title),
			mediaFilesProperty: {Files: []fileInput{{
				Type:     "external",
				Name:     fileName,
				External: externalFile{URL: m.URL},
			}}},
			mediaDateProperty: dateValue(c.clock.Today()),
		},
	}
	if _, err := c.createPage(ctx, "attach", req); err != nil {
		return "", err
	}
	return fmt.Sprintf("Image saved to Notion with caption: %s", m.Caption), nil
}

func (c *Client) createPage(ctx context.Context, op string, req createPageRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status, body, err := c.do(ctx, http.MethodPost, "/pages", req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &service.StoreWriteError{Op: op, StatusCode: status, Body: string(body)}
	}

	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("notion: decode page response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("notion: page response has no id")
	}

	c.log.Debug().Str("op", op).Str("id", resp.ID).Msg("page created")
	return resp.ID, nil
}

// resolveDate expands "today" and checks the value is an ISO date or datetime.
func (c *Client) resolveDate(s string) (string, error) {
	s = c.clock.Resolve(strings.TrimSpace(s))
	if _, err := time.Parse(clock.DateLayout, s); err == nil {
		return s, nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return s, nil
	}
	return "", &service.InvalidTaskError{Field: "date", Reason: fmt.Sprintf("%q is not an ISO 8601 date", s)}
}
