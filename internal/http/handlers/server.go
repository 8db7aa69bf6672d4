package handlers

import (
	"github.com/andrelima-dev/meuestoque/internal/auth"
	"github.com/andrelima-dev/meuestoque/internal/prefs"
	"github.com/andrelima-dev/meuestoque/internal/repo"
	"github.com/andrelima-dev/meuestoque/internal/snapshot"
)

var (
	productRepo  repo.ProductRepository
	saleRepo     repo.SaleRepository
	taskRepo     repo.TaskRepository
	movementRepo repo.MovementRepository
	userRepo     repo.UserRepository

	snapshotRecorder *snapshot.Recorder
	prefsStore       *prefs.Store
	refreshStore     *auth.RefreshStore
	banStore         *auth.BanStore
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetTaskRepo(r repo.TaskRepository) {
	taskRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetSnapshotRecorder(r *snapshot.Recorder) {
	snapshotRecorder = r
}

func SetPrefsStore(s *prefs.Store) {
	prefsStore = s
}

func SetRefreshStore(s *auth.RefreshStore) {
	refreshStore = s
}

func SetBanStore(s *auth.BanStore) {
	banStore = s
}
