package roster

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/config"
	"go.uber.org/zap"
)

type page[T any] struct {
	Items []T `json:"items"`
}

type Location struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Room struct {
	ID       string `json:"_id"`
	NameNo   string `json:"name_no"`
	Location string `json:"location"`
}

type ServiceUser struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	AccountCode string `json:"account_code"`
}

type Booking struct {
	ID          string `json:"_id"`
	ServiceUser string `json:"service_user"`
	Room        string `json:"room"`
}

// ResidentItem is one roster room joined with its occupant, if any.
type ResidentItem struct {
	RosterRoomID     string
	RosterLocationID string
	CareHomeName     string
	RoomNumber       string
	FullName         string
	AccountCode      string
	ServiceUserID    string
	IsVacant         bool
}

// Client reads the roster provider's paged API.
type Client interface {
	FetchResidents(ctx context.Context) ([]ResidentItem, error)
}

type client struct {
	http   *resty.Client
	secret string
	clock  clock.Clock
	log    *zap.Logger
}

const pageSize = 100

func NewClient(cfg config.Config, clk clock.Clock, log *zap.Logger) Client {
	http := resty.New().
		SetBaseURL(cfg.Roster.BaseURL).
		SetTimeout(time.Duration(cfg.Roster.TimeoutMS) * time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("X-Roster-Account", cfg.Roster.AccountID).
		SetHeader("X-Roster-ApiKey", cfg.Roster.APIKey)

	return &client{
		http:   http,
		secret: cfg.Roster.APISecret,
		clock:  clk,
		log:    log.Named("roster.client"),
	}
}

// fetchAll walks a paged resource until an empty page.
func fetchAll[T any](ctx context.Context, c *client, resource string, params map[string]string) ([]T, error) {
	var items []T
	for pageNo := 1; ; pageNo++ {
		var body page[T]
		req := c.http.R().
			SetContext(ctx).
			SetQueryParam("per_page", strconv.Itoa(pageSize)).
			SetQueryParam("page", strconv.Itoa(pageNo)).
			SetResult(&body)
		for k, v := range params {
			req.SetQueryParam(k, v)
		}
		ts := strconv.FormatInt(c.clock.Now().Unix(), 10)
		req.SetHeader("X-Roster-Timestamp", ts)
		req.SetHeader("X-Roster-Signature", c.sign(resource, ts))

		resp, err := req.Get("/" + resource)
		if err != nil {
			return nil, fmt.Errorf("roster %s page %d: %w", resource, pageNo, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("roster %s page %d: status %d", resource, pageNo, resp.StatusCode())
		}
		if len(body.Items) == 0 {
			return items, nil
		}
		items = append(items, body.Items...)
	}
}

func (c *client) sign(resource, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(timestamp + "/" + resource))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *client) FetchResidents(ctx context.Context) ([]ResidentItem, error) {
	today := c.clock.Now().UTC().Format("2006-01-02")

	locations, err := fetchAll[Location](ctx, c, "locations", nil)
	if err != nil {
		return nil, err
	}
	rooms, err := fetchAll[Room](ctx, c, "rooms", nil)
	if err != nil {
		return nil, err
	}
	users, err := fetchAll[ServiceUser](ctx, c, "service-users", map[string]string{
		"filters-status": "active",
	})
	if err != nil {
		return nil, err
	}
	bookings, err := fetchAll[Booking](ctx, c, "bookings", map[string]string{
		"filters-cancelled":    "no",
		"filters-booking_type": "service_user",
		"filters-start_date":   today,
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("roster fetched",
		zap.Int("locations", len(locations)),
		zap.Int("rooms", len(rooms)),
		zap.Int("service_users", len(users)),
		zap.Int("bookings", len(bookings)),
	)

	return JoinResidents(locations, rooms, users, bookings), nil
}

// JoinResidents builds one row per room. A room with no active booking is
// vacant; the first booking per room wins.
func JoinResidents(locations []Location, rooms []Room, users []ServiceUser, bookings []Booking) []ResidentItem {
	locationByID := make(map[string]string, len(locations))
	for _, loc := range locations {
		locationByID[loc.ID] = loc.Name
	}
	userByID := make(map[string]ServiceUser, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	bookingByRoom := make(map[string]Booking, len(bookings))
	for _, b := range bookings {
		if b.Room == "" {
			continue
		}
		if _, ok := bookingByRoom[b.Room]; !ok {
			bookingByRoom[b.Room] = b
		}
	}

	items := make([]ResidentItem, 0, len(rooms))
	for _, room := range rooms {
		item := ResidentItem{
			RosterRoomID:     room.ID,
			RosterLocationID: room.Location,
			CareHomeName:     locationByID[room.Location],
			RoomNumber:       room.NameNo,
			IsVacant:         true,
		}
		if item.CareHomeName == "" {
			item.CareHomeName = "Unknown"
		}
		if booking, ok := bookingByRoom[room.ID]; ok {
			if user, ok := userByID[booking.ServiceUser]; ok {
				item.FullName = joinName(user.FirstName, user.LastName)
				item.AccountCode = user.AccountCode
				item.ServiceUserID = user.ID
			}
		}
		item.IsVacant = item.FullName == ""
		items = append(items, item)
	}
	return items
}

func joinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
