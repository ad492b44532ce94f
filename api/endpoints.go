// ABOUTME: Resource wrappers for tutors, chats, reviews, and platform metadata
// ABOUTME: Thin pass-throughs to Request with fixed endpoint templates

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tutorlink/tutorlink-go/models"
)

// GetTutors lists tutors, optionally filtered.
func (c *Client) GetTutors(ctx context.Context, params models.TutorSearchParams) ([]models.TutorSummary, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Subject != "" {
		query.Set("subject", params.Subject)
	}
	if params.Location != "" {
		query.Set("location", params.Location)
	}
	if params.PriceMin > 0 {
		query.Set("price_min", fmt.Sprintf("%g", params.PriceMin))
	}
	if params.PriceMax > 0 {
		query.Set("price_max", fmt.Sprintf("%g", params.PriceMax))
	}

	endpoint := "/tutors/"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var tutors []models.TutorSummary
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

// GetTutorDetail fetches a single tutor profile.
func (c *Client) GetTutorDetail(ctx context.Context, tutorID string) (*models.TutorSummary, error) {
	var tutor models.TutorSummary
	if err := c.Request(ctx, http.MethodGet, "/tutors/"+url.PathEscape(tutorID)+"/", nil, &tutor); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// LikeTutor records a swipe-right on a tutor.
func (c *Client) LikeTutor(ctx context.Context, tutorID string) error {
	return c.Request(ctx, http.MethodPost, "/tutors/"+url.PathEscape(tutorID)+"/like/", nil, nil)
}

// UnlikeTutor removes a like.
func (c *Client) UnlikeTutor(ctx context.Context, tutorID string) error {
	return c.Request(ctx, http.MethodDelete, "/tutors/"+url.PathEscape(tutorID)+"/like/", nil, nil)
}

// SaveTutor adds a tutor to the user's saved list.
func (c *Client) SaveTutor(ctx context.Context, tutorID string) error {
	return c.Request(ctx, http.MethodPost, "/tutors/"+url.PathEscape(tutorID)+"/save/", nil, nil)
}

// UnsaveTutor removes a tutor from the saved list.
func (c *Client) UnsaveTutor(ctx context.Context, tutorID string) error {
	return c.Request(ctx, http.MethodDelete, "/tutors/"+url.PathEscape(tutorID)+"/save/", nil, nil)
}

// GetSavedTutors lists the user's saved tutors.
func (c *Client) GetSavedTutors(ctx context.Context) ([]models.TutorSummary, error) {
	var tutors []models.TutorSummary
	if err := c.Request(ctx, http.MethodGet, "/users/saved-tutors/", nil, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

// GetLikedTutors lists the user's liked tutors.
func (c *Client) GetLikedTutors(ctx context.Context) ([]models.TutorSummary, error) {
	var tutors []models.TutorSummary
	if err := c.Request(ctx, http.MethodGet, "/users/liked-tutors/", nil, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

// GetChatRooms lists the user's conversations.
func (c *Client) GetChatRooms(ctx context.Context) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := c.Request(ctx, http.MethodGet, "/chats/", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateChatRoom opens a conversation with a tutor.
func (c *Client) CreateChatRoom(ctx context.Context, tutorID string) (*models.ChatRoom, error) {
	body := map[string]string{"tutor_id": tutorID}
	var room models.ChatRoom
	if err := c.Request(ctx, http.MethodPost, "/chats/create/", body, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetChatMessages fetches the messages in a conversation.
func (c *Client) GetChatMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	var messages []models.Message
	if err := c.Request(ctx, http.MethodGet, "/chats/"+url.PathEscape(roomID)+"/messages/", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message to a conversation.
func (c *Client) SendMessage(ctx context.Context, roomID, content string) (*models.Message, error) {
	body := map[string]string{"content": content}
	var message models.Message
	if err := c.Request(ctx, http.MethodPost, "/chats/"+url.PathEscape(roomID)+"/send/", body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// GetTutorReviews lists reviews for a tutor.
func (c *Client) GetTutorReviews(ctx context.Context, tutorID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.Request(ctx, http.MethodGet, "/tutors/"+url.PathEscape(tutorID)+"/reviews/", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a rating and comment for a tutor.
func (c *Client) CreateReview(ctx context.Context, tutorID string, rating int, comment string) (*models.Review, error) {
	body := map[string]any{"rating": rating, "comment": comment}
	var review models.Review
	if err := c.Request(ctx, http.MethodPost, "/tutors/"+url.PathEscape(tutorID)+"/reviews/create/", body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetSubjects fetches the platform subject catalog. Results are cached
// briefly; the catalog changes rarely and backs every search form.
func (c *Client) GetSubjects(ctx context.Context) ([]models.Subject, error) {
	if cached, ok := c.catalog.Get("subjects"); ok {
		return cached.([]models.Subject), nil
	}

	var subjects []models.Subject
	if err := c.Request(ctx, http.MethodGet, "/subjects/", nil, &subjects); err != nil {
		return nil, err
	}
	c.catalog.Set("subjects", subjects)
	return subjects, nil
}

// GetPlatformStats fetches the aggregate platform counters, cached like
// the subject catalog.
func (c *Client) GetPlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	if cached, ok := c.catalog.Get("platform-stats"); ok {
		return cached.(*models.PlatformStats), nil
	}

	var stats models.PlatformStats
	if err := c.Request(ctx, http.MethodGet, "/platform/stats/", nil, &stats); err != nil {
		return nil, err
	}
	c.catalog.Set("platform-stats", &stats)
	return &stats, nil
}
