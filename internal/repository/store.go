package repository

import (
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/mysql"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
)

// Store bundles the mysql repositories into the ledger's Store interface.
type Store struct {
	*VerificationRepository
	*NotificationRepository
	*CasinoIssueRepository
	*EventRepository
}

var _ ledger.Store = (*Store)(nil)

func NewStore(dbhandler mysql.Handler) *Store {
	return &Store{
		VerificationRepository: NewVerificationRepository(dbhandler),
		NotificationRepository: NewNotificationRepository(dbhandler),
		CasinoIssueRepository:  NewCasinoIssueRepository(dbhandler),
		EventRepository:        NewEventRepository(dbhandler),
	}
}
