package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
)

// memStore backs every fake repository so services sharing a store see each other's writes.
type memStore struct {
	mu          sync.Mutex
	accounts    map[string]*models.Account
	profiles    map[string]*models.Profile
	tokens      map[string]*models.RefreshToken
	connections []models.Connection
	requests    []models.MentorshipRequest
	messages    []models.Message
	tasks       []models.Task
	events      []models.Event
	joined      map[string][]string
	posts       map[string]*models.BlogPost
	ledger      []models.BlogInteraction

	// failMessageCreate makes the next message insert fail.
	failMessageCreate error
	// beforeRequestUpdate runs just before a conditional request update is applied.
	beforeRequestUpdate func()
	// beforeTokenConsume runs just before a refresh token is consumed.
	beforeTokenConsume func()
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]*models.Account{},
		profiles: map[string]*models.Profile{},
		tokens:   map[string]*models.RefreshToken{},
		joined:   map[string][]string{},
		posts:    map[string]*models.BlogPost{},
	}
}

func (s *memStore) addProfile(id string, role domain.Role, active bool) *models.Profile {
	p := &models.Profile{ID: id, FullName: "User " + id, Email: id + "@example.com", Role: role, IsActive: active}
	s.profiles[id] = p
	return p
}

func (s *memStore) profileCopy(id string) *models.Profile {
	p, ok := s.profiles[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (s *memStore) repos() *repositories.TxRepositories {
	return &repositories.TxRepositories{
		Accounts:           &fakeAccountRepo{s},
		Profiles:           &fakeProfileRepo{s},
		Connections:        &fakeConnectionRepo{s},
		MentorshipRequests: &fakeMentorshipRepo{s},
		Messages:           &fakeMessageRepo{s},
	}
}

// fakeTransactor restores the relationship and message tables when fn fails.
type fakeTransactor struct{ s *memStore }

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos *repositories.TxRepositories) error) error {
	t.s.mu.Lock()
	requests := append([]models.MentorshipRequest(nil), t.s.requests...)
	messages := append([]models.Message(nil), t.s.messages...)
	accounts := make(map[string]*models.Account, len(t.s.accounts))
	for k, v := range t.s.accounts {
		accounts[k] = v
	}
	profiles := make(map[string]*models.Profile, len(t.s.profiles))
	for k, v := range t.s.profiles {
		profiles[k] = v
	}
	t.s.mu.Unlock()

	if err := fn(ctx, t.s.repos()); err != nil {
		t.s.mu.Lock()
		t.s.requests, t.s.messages, t.s.accounts, t.s.profiles = requests, messages, accounts, profiles
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type fakeAccountRepo struct{ s *memStore }

func (r *fakeAccountRepo) Create(_ context.Context, a *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	cp := *a
	r.s.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeAccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeAccountRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	if a, ok := r.s.accounts[id]; ok {
		a.LastLoginAt = &now
	}
	return nil
}

type fakeTokenRepo struct{ s *memStore }

func (r *fakeTokenRepo) CreateToken(_ context.Context, token, accountID string, expiry time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tokens[token] = &models.RefreshToken{Token: token, AccountID: accountID, ExpiryDate: expiry}
	return nil
}

func (r *fakeTokenRepo) GetToken(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	switch {
	case !ok:
		return nil, apperrors.ErrTokenNotFound
	case t.IsRevoked:
		return nil, apperrors.ErrTokenRevoked
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.IsRevoked = true
	return nil
}

func (r *fakeTokenRepo) ConsumeToken(_ context.Context, token string) error {
	if hook := r.s.beforeTokenConsume; hook != nil {
		r.s.beforeTokenConsume = nil
		hook()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	if !ok || t.IsRevoked {
		return apperrors.ErrTokenRevoked
	}
	t.IsRevoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllForAccount(_ context.Context, accountID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.AccountID == accountID {
			t.IsRevoked = true
		}
	}
	return nil
}

type fakeProfileRepo struct{ s *memStore }

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.profileCopy(id); p != nil {
		return p, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeProfileRepo) List(_ context.Context, f models.ProfileFilter) ([]*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Profile
	for id := range r.s.profiles {
		p := r.s.profileCopy(id)
		if (f.Role.IsSet() && p.Role != f.Role) || (f.ActiveOnly && !p.IsActive) || p.ID == f.ExcludeID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, id string, u models.ProfileUpdate) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Expertise != nil {
		p.Expertise = u.Expertise
	}
	if u.Interests != nil {
		p.Interests = u.Interests
	}
	if u.Goals != nil {
		p.Goals = u.Goals
	}
	if u.YearsOfExperience != nil {
		p.YearsOfExperience = u.YearsOfExperience
	}
	return r.s.profileCopy(id), nil
}

func (r *fakeProfileRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	p.Role = role
	return nil
}

func (r *fakeProfileRepo) UpdateActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	p.IsActive = active
	return nil
}

type fakeConnectionRepo struct{ s *memStore }

func (r *fakeConnectionRepo) find(id string) int {
	for i := range r.s.connections {
		if r.s.connections[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeConnectionRepo) expand(c models.Connection) *models.Connection {
	c.User1 = r.s.profileCopy(c.UserID1)
	c.User2 = r.s.profileCopy(c.UserID2)
	return &c
}

func (r *fakeConnectionRepo) Create(_ context.Context, c *models.Connection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.connections {
		if existing.Involves(c.UserID1) && existing.Involves(c.UserID2) {
			return apperrors.ErrConnectionAlreadyExists
		}
	}
	r.s.connections = append(r.s.connections, *c)
	return nil
}

func (r *fakeConnectionRepo) GetByID(_ context.Context, id string) (*models.Connection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return nil, apperrors.ErrConnectionNotFound
	}
	return r.expand(r.s.connections[i]), nil
}

func (r *fakeConnectionRepo) FindBetween(_ context.Context, a, b string) (*models.Connection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.connections {
		if c.Involves(a) && c.Involves(b) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConnectionRepo) ListForUser(_ context.Context, userID string) ([]*models.Connection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Connection
	for _, c := range r.s.connections {
		if c.Involves(userID) {
			out = append(out, r.expand(c))
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) UpdateStatus(_ context.Context, id, responderID string, from, to domain.RelationshipStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 || r.s.connections[i].UserID2 != responderID || r.s.connections[i].Status != from {
		return apperrors.ErrStaleStatus
	}
	r.s.connections[i].Status = to
	return nil
}

func (r *fakeConnectionRepo) Reopen(_ context.Context, id, requesterID, targetID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 || r.s.connections[i].Status != domain.StatusDeclined {
		return apperrors.ErrStaleStatus
	}
	c := &r.s.connections[i]
	c.UserID1, c.UserID2, c.Status = requesterID, targetID, domain.StatusPending
	return nil
}

func (r *fakeConnectionRepo) ExpirePending(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeMentorshipRepo struct{ s *memStore }

func (r *fakeMentorshipRepo) find(id string) int {
	for i := range r.s.requests {
		if r.s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeMentorshipRepo) expand(req models.MentorshipRequest) *models.MentorshipRequest {
	req.Mentor = r.s.profileCopy(req.MentorID)
	req.Mentee = r.s.profileCopy(req.MenteeID)
	return &req
}

func (r *fakeMentorshipRepo) Create(_ context.Context, req *models.MentorshipRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.requests {
		if existing.MentorID == req.MentorID && existing.MenteeID == req.MenteeID {
			return apperrors.ErrRequestAlreadyExists
		}
	}
	cp := *req
	cp.Mentor, cp.Mentee = nil, nil
	r.s.requests = append(r.s.requests, cp)
	return nil
}

func (r *fakeMentorshipRepo) GetByID(_ context.Context, id string) (*models.MentorshipRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return nil, apperrors.ErrRequestNotFound
	}
	return r.expand(r.s.requests[i]), nil
}

func (r *fakeMentorshipRepo) FindByPair(_ context.Context, mentorID, menteeID string) (*models.MentorshipRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.MentorID == mentorID && req.MenteeID == menteeID {
			cp := req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMentorshipRepo) UpdateStatus(_ context.Context, id, mentorID string, from, to domain.RelationshipStatus) error {
	if hook := r.s.beforeRequestUpdate; hook != nil {
		r.s.beforeRequestUpdate = nil
		hook()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 || r.s.requests[i].MentorID != mentorID || r.s.requests[i].Status != from {
		return apperrors.ErrStaleStatus
	}
	now := time.Now()
	r.s.requests[i].Status = to
	r.s.requests[i].RespondedAt = &now
	return nil
}

func (r *fakeMentorshipRepo) Reopen(_ context.Context, id string, message *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 || r.s.requests[i].Status != domain.StatusDeclined {
		return apperrors.ErrStaleStatus
	}
	r.s.requests[i].Status = domain.StatusPending
	r.s.requests[i].Message = message
	r.s.requests[i].RespondedAt = nil
	return nil
}

func (r *fakeMentorshipRepo) list(match func(models.MentorshipRequest) bool, status domain.RelationshipStatus) []*models.MentorshipRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.MentorshipRequest
	for _, req := range r.s.requests {
		if match(req) && (status == "" || req.Status == status) {
			out = append(out, r.expand(req))
		}
	}
	return out
}

func (r *fakeMentorshipRepo) ListForMentor(_ context.Context, mentorID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error) {
	return r.list(func(req models.MentorshipRequest) bool { return req.MentorID == mentorID }, status), nil
}

func (r *fakeMentorshipRepo) ListForMentee(_ context.Context, menteeID string, status domain.RelationshipStatus) ([]*models.MentorshipRequest, error) {
	return r.list(func(req models.MentorshipRequest) bool { return req.MenteeID == menteeID }, status), nil
}

func (r *fakeMentorshipRepo) CountByStatus(_ context.Context, status domain.RelationshipStatus) (int, error) {
	return len(r.list(func(models.MentorshipRequest) bool { return true }, status)), nil
}

func (r *fakeMentorshipRepo) ExpirePending(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeMessageRepo struct{ s *memStore }

func (r *fakeMessageRepo) Create(_ context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failMessageCreate; err != nil {
		r.s.failMessageCreate = nil
		return err
	}
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

func between(m models.Message, a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

func (r *fakeMessageRepo) Thread(_ context.Context, a, b string) ([]*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Message
	for _, m := range r.s.messages {
		if between(m, a, b) {
			cp := m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkThreadRead(_ context.Context, readerID, senderID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	now := time.Now()
	for i := range r.s.messages {
		m := &r.s.messages[i]
		if m.SenderID == senderID && m.ReceiverID == readerID && m.ReadAt == nil {
			m.ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) Conversations(_ context.Context, userID string) ([]*models.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byCounterpart := map[string]*models.Conversation{}
	var order []string
	for i := len(r.s.messages) - 1; i >= 0; i-- {
		m := r.s.messages[i]
		other := m.ReceiverID
		if m.ReceiverID == userID {
			other = m.SenderID
		} else if m.SenderID != userID {
			continue
		}
		conv, ok := byCounterpart[other]
		if !ok {
			cp := m
			conv = &models.Conversation{Counterpart: r.s.profileCopy(other), LastMessage: &cp}
			byCounterpart[other] = conv
			order = append(order, other)
		}
		if m.ReceiverID == userID && m.ReadAt == nil {
			conv.UnreadCount++
		}
	}
	out := make([]*models.Conversation, 0, len(order))
	for _, id := range order {
		out = append(out, byCounterpart[id])
	}
	return out, nil
}

type fakeTaskRepo struct{ s *memStore }

func (r *fakeTaskRepo) Create(_ context.Context, t *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks = append(r.s.tasks, *t)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tasks {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, apperrors.ErrTaskNotFound
}

func (r *fakeTaskRepo) filter(match func(models.Task) bool) []*models.Task {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Task
	for _, t := range r.s.tasks {
		if match(t) {
			cp := t
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeTaskRepo) ListAssignedTo(_ context.Context, menteeID string) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool { return t.AssignedTo == menteeID }), nil
}

func (r *fakeTaskRepo) ListAssignedBy(_ context.Context, assignerID string) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool { return t.AssignedBy == assignerID }), nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id string, status domain.TaskStatus) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.tasks {
		if r.s.tasks[i].ID == id {
			r.s.tasks[i].Status = status
			cp := r.s.tasks[i]
			return &cp, nil
		}
	}
	return nil, apperrors.ErrTaskNotFound
}

type fakeEventRepo struct{ s *memStore }

func (r *fakeEventRepo) Create(_ context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events = append(r.s.events, *e)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.events {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) Update(_ context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.events {
		if r.s.events[i].ID == e.ID {
			r.s.events[i] = *e
			return nil
		}
	}
	return apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.events {
		if r.s.events[i].ID == id {
			r.s.events = append(r.s.events[:i], r.s.events[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) ListUpcoming(_ context.Context, from time.Time) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Event
	for _, e := range r.s.events {
		if e.StartDate.After(from) {
			cp := e
			cp.ParticipantCount = len(r.s.joined[e.ID])
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByCreator(_ context.Context, creatorID string) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Event
	for _, e := range r.s.events {
		if e.CreatedBy == creatorID {
			cp := e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) AddParticipant(_ context.Context, p *models.EventParticipant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.joined[p.EventID] {
		if id == p.ParticipantID {
			return repositories.ErrAlreadyJoined
		}
	}
	r.s.joined[p.EventID] = append(r.s.joined[p.EventID], p.ParticipantID)
	return nil
}

func (r *fakeEventRepo) ListParticipants(_ context.Context, eventID string) ([]*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Profile
	for _, id := range r.s.joined[eventID] {
		out = append(out, r.s.profileCopy(id))
	}
	return out, nil
}

type fakeBlogRepo struct{ s *memStore }

func (r *fakeBlogRepo) CreatePost(_ context.Context, p *models.BlogPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) GetPost(_ context.Context, id string) (*models.BlogPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeBlogRepo) UpdatePost(_ context.Context, p *models.BlogPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[p.ID]; !ok {
		return apperrors.ErrPostNotFound
	}
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) DeletePost(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *fakeBlogRepo) ListPosts(_ context.Context, f models.PostListFilter) ([]*models.BlogPost, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.BlogPost
	for _, p := range r.s.posts {
		if p.VisibleTo(f.ViewerID) && (f.AuthorID == "" || p.AuthorID == f.AuthorID) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBlogRepo) FindToggle(_ context.Context, postID, userID string, kind domain.InteractionType) (*models.BlogInteraction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range r.s.ledger {
		if in.PostID == postID && in.UserID != nil && *in.UserID == userID && in.Type == kind {
			cp := in
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBlogRepo) AddInteraction(_ context.Context, in *models.BlogInteraction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[in.PostID]; !ok {
		return apperrors.ErrPostNotFound
	}
	if in.Type.IsToggle() {
		for _, existing := range r.s.ledger {
			if existing.PostID == in.PostID && existing.Type == in.Type && *existing.UserID == *in.UserID {
				return apperrors.NewConflictError("Interaction already recorded")
			}
		}
	}
	r.s.ledger = append(r.s.ledger, *in)
	return nil
}

func (r *fakeBlogRepo) DeleteInteraction(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.ledger {
		if r.s.ledger[i].ID == id {
			r.s.ledger = append(r.s.ledger[:i], r.s.ledger[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeBlogRepo) CountInteractions(_ context.Context, postID string) (models.InteractionCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c models.InteractionCounts
	for _, in := range r.s.ledger {
		if in.PostID != postID {
			continue
		}
		switch in.Type {
		case domain.InteractionLike:
			c.Likes++
		case domain.InteractionComment:
			c.Comments++
		case domain.InteractionRecommend:
			c.Recommendations++
		case domain.InteractionView:
			c.Views++
		}
	}
	return c, nil
}

func (r *fakeBlogRepo) ListComments(_ context.Context, postID string) ([]*models.BlogInteraction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.BlogInteraction
	for _, in := range r.s.ledger {
		if in.PostID == postID && in.Type == domain.InteractionComment {
			cp := in
			out = append(out, &cp)
		}
	}
	return out, nil
}

type sentEvent struct {
	userID string // empty for broadcasts
	event  *websocket.Event
}

// recordingPublisher captures every published event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []sentEvent
}

func (p *recordingPublisher) Publish(userID string, event *websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, sentEvent{userID: userID, event: event})
}

func (p *recordingPublisher) Broadcast(event *websocket.Event) {
	p.Publish("", event)
}

func (p *recordingPublisher) to(userID string, eventType websocket.EventType) []*websocket.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*websocket.Event
	for _, e := range p.events {
		if e.userID == userID && e.event.Type == eventType {
			out = append(out, e.event)
		}
	}
	return out
}
