package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/mentorhub/mentorhub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository           *AccountRepository
	ProfileRepository           *ProfileRepository
	TokenRepository             *TokenRepository
	ConnectionRepository        *ConnectionRepository
	MentorshipRequestRepository *MentorshipRequestRepository
	MessageRepository           *MessageRepository
	TaskRepository              *TaskRepository
	EventRepository             *EventRepository
	BlogRepository              *BlogRepository
	Transactor                  *Transactor
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.TxBeginner) *Repositories {
	return &Repositories{
		AccountRepository:           NewAccountRepository(conn),
		ProfileRepository:           NewProfileRepository(conn),
		TokenRepository:             NewTokenRepository(conn),
		ConnectionRepository:        NewConnectionRepository(conn),
		MentorshipRequestRepository: NewMentorshipRequestRepository(conn),
		MessageRepository:           NewMessageRepository(conn),
		TaskRepository:              NewTaskRepository(conn),
		EventRepository:             NewEventRepository(conn),
		BlogRepository:              NewBlogRepository(conn),
		Transactor:                  NewTransactor(conn),
	}
}

// TxRepositories are the repositories bound to one open transaction.
type TxRepositories struct {
	Accounts           IAccountRepository
	Profiles           IProfileRepository
	Connections        IConnectionRepository
	MentorshipRequests IMentorshipRequestRepository
	Messages           IMessageRepository
}

// ITransactor runs a unit of work atomically.
type ITransactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos *TxRepositories) error) error
}

// Transactor opens transactions on a pool
type Transactor struct {
	conn db.TxBeginner
}

// NewTransactor creates a new Transactor
func NewTransactor(conn db.TxBeginner) *Transactor {
	return &Transactor{conn: conn}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos *TxRepositories) error) error {
	return db.WithTransaction(ctx, t.conn, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &TxRepositories{
			Accounts:           NewAccountRepository(tx),
			Profiles:           NewProfileRepository(tx),
			Connections:        NewConnectionRepository(tx),
			MentorshipRequests: NewMentorshipRequestRepository(tx),
			Messages:           NewMessageRepository(tx),
		})
	})
}
