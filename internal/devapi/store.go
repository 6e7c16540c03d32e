package devapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"anoa.com/leadercircle/internal/entity"
)

// ErrConnectionAnswered reports an answer to a connection that was already
// accepted or declined.
var ErrConnectionAnswered = errors.New("connection already answered")

// Store is the persistence the handlers need. Lookups of missing rows return
// gorm.ErrRecordNotFound.
type Store interface {
	CreateUser(ctx context.Context, user *entity.User) error
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	FindUserByID(ctx context.Context, id string) (*entity.User, error)
	ListUsers(ctx context.Context, role entity.Role, cohortID string) ([]entity.User, error)

	FindProfile(ctx context.Context, userID string) (*entity.Profile, error)
	SaveProfile(ctx context.Context, profile *entity.Profile) error
	FindProfiles(ctx context.Context, userIDs []string) ([]entity.Profile, error)
	SearchProfiles(ctx context.Context, query string) ([]entity.Profile, error)

	ListEvents(ctx context.Context, filter EventFilter) ([]entity.Event, error)
	FindEvent(ctx context.Context, id string) (*entity.Event, error)
	UpsertRSVP(ctx context.Context, rsvp *entity.EventRSVP) error
	AttachRSVPs(ctx context.Context, userID string, events []entity.Event) error
	ListAttendees(ctx context.Context, eventID string) ([]entity.User, error)

	ListResources(ctx context.Context, filter ResourceFilter) ([]entity.Resource, error)
	FindResource(ctx context.Context, id string) (*entity.Resource, error)
	FindResources(ctx context.Context, ids []string) ([]entity.Resource, error)

	CreateConnection(ctx context.Context, conn *entity.Connection) error
	FindConnection(ctx context.Context, id string) (*entity.Connection, error)
	FindOpenConnection(ctx context.Context, userA, userB string) (*entity.Connection, error)
	UpdateConnection(ctx context.Context, conn *entity.Connection) error
	ListConnections(ctx context.Context, userID string, status entity.ConnectionStatus) ([]entity.Connection, error)

	CreateMessage(ctx context.Context, msg *entity.Message) error
	FindMessage(ctx context.Context, id string) (*entity.Message, error)
	MarkMessageRead(ctx context.Context, msg *entity.Message) error
	Thread(ctx context.Context, userA, userB string) ([]entity.Message, error)
}

type EventFilter struct {
	PublicOnly bool
	From       *time.Time
	// AttendeeID limits the list to events the user answered GOING or INTERESTED.
	AttendeeID string
}

type ResourceFilter struct {
	Type   entity.ResourceType
	Module string
	Query  string
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateUser(ctx context.Context, user *entity.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := s.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := s.db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context, role entity.Role, cohortID string) ([]entity.User, error) {
	users := []entity.User{}
	query := s.db.WithContext(ctx).Preload("Profile").Order("created_at ASC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if cohortID != "" {
		query = query.Where("cohort_id = ?", cohortID)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) FindProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	var profile entity.Profile
	if err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *gormStore) SaveProfile(ctx context.Context, profile *entity.Profile) error {
	return s.db.WithContext(ctx).Save(profile).Error
}

func (s *gormStore) FindProfiles(ctx context.Context, userIDs []string) ([]entity.Profile, error) {
	profiles := []entity.Profile{}
	if len(userIDs) == 0 {
		return profiles, nil
	}
	if err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return orderBy(profiles, userIDs, func(p entity.Profile) string { return p.UserID }), nil
}

func (s *gormStore) SearchProfiles(ctx context.Context, query string) ([]entity.Profile, error) {
	profiles := []entity.Profile{}
	q := s.db.WithContext(ctx).Order("full_name ASC")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(position) LIKE ? OR LOWER(company) LIKE ? OR LOWER(bio) LIKE ?",
			like, like, like, like)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *gormStore) ListEvents(ctx context.Context, filter EventFilter) ([]entity.Event, error) {
	events := []entity.Event{}
	query := s.db.WithContext(ctx).Order("date ASC")
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.AttendeeID != "" {
		query = query.Where("id IN (?)", s.db.Model(&entity.EventRSVP{}).
			Select("event_id").
			Where("user_id = ? AND status IN ?", filter.AttendeeID, []entity.RSVPStatus{entity.RSVPGoing, entity.RSVPInterested}))
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *gormStore) FindEvent(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *gormStore) UpsertRSVP(ctx context.Context, rsvp *entity.EventRSVP) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(rsvp).Error
}

// AttachRSVPs fills AttendeeCount and the caller's RSVPStatus on each event.
func (s *gormStore) AttachRSVPs(ctx context.Context, userID string, events []entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	var counts []struct {
		EventID string
		Total   int
	}
	if err := s.db.WithContext(ctx).Model(&entity.EventRSVP{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ? AND status = ?", ids, entity.RSVPGoing).
		Group("event_id").
		Scan(&counts).Error; err != nil {
		return err
	}

	var mine []entity.EventRSVP
	if err := s.db.WithContext(ctx).
		Where("event_id IN ? AND user_id = ?", ids, userID).
		Find(&mine).Error; err != nil {
		return err
	}

	countByEvent := make(map[string]int, len(counts))
	for _, c := range counts {
		countByEvent[c.EventID] = c.Total
	}
	statusByEvent := make(map[string]entity.RSVPStatus, len(mine))
	for _, r := range mine {
		statusByEvent[r.EventID] = r.Status
	}

	for i := range events {
		events[i].AttendeeCount = countByEvent[events[i].ID]
		if status, ok := statusByEvent[events[i].ID]; ok {
			events[i].RSVPStatus = &status
		}
	}
	return nil
}

func (s *gormStore) ListAttendees(ctx context.Context, eventID string) ([]entity.User, error) {
	users := []entity.User{}
	err := s.db.WithContext(ctx).Preload("Profile").
		Where("id IN (?)", s.db.Model(&entity.EventRSVP{}).
			Select("user_id").
			Where("event_id = ? AND status = ?", eventID, entity.RSVPGoing)).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) ListResources(ctx context.Context, filter ResourceFilter) ([]entity.Resource, error) {
	resources := []entity.Resource{}
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Module != "" {
		query = query.Where("module = ?", filter.Module)
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *gormStore) FindResource(ctx context.Context, id string) (*entity.Resource, error) {
	var resource entity.Resource
	if err := s.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (s *gormStore) FindResources(ctx context.Context, ids []string) ([]entity.Resource, error) {
	resources := []entity.Resource{}
	if len(ids) == 0 {
		return resources, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&resources).Error; err != nil {
		return nil, err
	}
	return orderBy(resources, ids, func(r entity.Resource) string { return r.ID }), nil
}

func (s *gormStore) CreateConnection(ctx context.Context, conn *entity.Connection) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(conn).Error
}

func (s *gormStore) FindConnection(ctx context.Context, id string) (*entity.Connection, error) {
	var conn entity.Connection
	err := s.db.WithContext(ctx).
		Preload("Requester.Profile").
		Preload("Target.Profile").
		First(&conn, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// FindOpenConnection returns a PENDING or ACCEPTED connection between the
// two users in either direction.
func (s *gormStore) FindOpenConnection(ctx context.Context, userA, userB string) (*entity.Connection, error) {
	var conn entity.Connection
	err := s.db.WithContext(ctx).
		Where("((requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)) AND status IN ?",
			userA, userB, userB, userA,
			[]entity.ConnectionStatus{entity.ConnectionStatusPending, entity.ConnectionStatusAccepted}).
		First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// UpdateConnection answers a pending request. It returns
// ErrConnectionAnswered when the row is no longer pending.
func (s *gormStore) UpdateConnection(ctx context.Context, conn *entity.Connection) error {
	result := s.db.WithContext(ctx).Model(&entity.Connection{}).
		Where("id = ? AND status = ?", conn.ID, entity.ConnectionStatusPending).
		Updates(map[string]any{"status": conn.Status, "responded_at": conn.RespondedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectionAnswered
	}
	return nil
}

func (s *gormStore) ListConnections(ctx context.Context, userID string, status entity.ConnectionStatus) ([]entity.Connection, error) {
	conns := []entity.Connection{}
	err := s.db.WithContext(ctx).
		Preload("Requester.Profile").
		Preload("Target.Profile").
		Where("(requester_id = ? OR target_id = ?) AND status = ?", userID, userID, status).
		Order("requested_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}

func (s *gormStore) CreateMessage(ctx context.Context, msg *entity.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *gormStore) FindMessage(ctx context.Context, id string) (*entity.Message, error) {
	var msg entity.Message
	if err := s.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *gormStore) MarkMessageRead(ctx context.Context, msg *entity.Message) error {
	msg.IsRead = true
	return s.db.WithContext(ctx).Model(&entity.Message{}).Where("id = ?", msg.ID).Update("is_read", true).Error
}

// Thread returns every message between the two users, oldest first.
func (s *gormStore) Thread(ctx context.Context, userA, userB string) ([]entity.Message, error) {
	msgs := []entity.Message{}
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
		Order("sent_at ASC").
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// orderBy returns items sorted to follow ids, dropping any id with no item.
func orderBy[T any](items []T, ids []string, key func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
