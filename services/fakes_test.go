package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/stretchr/testify/require"
)

// Function-field fakes: tests set only the methods the code under test
// is expected to call, anything else panics via the nil function.

type fakeMemberRepo struct {
	CreateFunc          func(ctx context.Context, member *models.Member) error
	GetByIDFunc         func(ctx context.Context, id int) (*models.Member, error)
	ListFunc            func(ctx context.Context) ([]models.Member, error)
	UpdateFunc          func(ctx context.Context, member *models.Member) error
	UpdateHandicapFunc  func(ctx context.Context, exec repositories.SQLExecutor, id int, handicap float64) error
	UpdateAvatarKeyFunc func(ctx context.Context, id int, avatarKey *string) error
	DeleteFunc          func(ctx context.Context, id int) error
	CountFunc           func(ctx context.Context) (int, error)
	AppendHistoryFunc   func(ctx context.Context, exec repositories.SQLExecutor, entry *models.HandicapHistory) error
	ListHistoryFunc     func(ctx context.Context, memberID int) ([]models.HandicapHistory, error)
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *models.Member) error { return f.CreateFunc(ctx, m) }
func (f *fakeMemberRepo) GetByID(ctx context.Context, id int) (*models.Member, error) {
	return f.GetByIDFunc(ctx, id)
}
func (f *fakeMemberRepo) List(ctx context.Context) ([]models.Member, error) { return f.ListFunc(ctx) }
func (f *fakeMemberRepo) Update(ctx context.Context, m *models.Member) error {
	return f.UpdateFunc(ctx, m)
}
func (f *fakeMemberRepo) UpdateHandicap(ctx context.Context, exec repositories.SQLExecutor, id int, handicap float64) error {
	return f.UpdateHandicapFunc(ctx, exec, id, handicap)
}
func (f *fakeMemberRepo) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	return f.UpdateAvatarKeyFunc(ctx, id, avatarKey)
}
func (f *fakeMemberRepo) Delete(ctx context.Context, id int) error { return f.DeleteFunc(ctx, id) }
func (f *fakeMemberRepo) Count(ctx context.Context) (int, error)   { return f.CountFunc(ctx) }
func (f *fakeMemberRepo) AppendHistory(ctx context.Context, exec repositories.SQLExecutor, entry *models.HandicapHistory) error {
	return f.AppendHistoryFunc(ctx, exec, entry)
}
func (f *fakeMemberRepo) ListHistory(ctx context.Context, memberID int) ([]models.HandicapHistory, error) {
	return f.ListHistoryFunc(ctx, memberID)
}

type fakeTournamentRepo struct {
	CreateFunc        func(ctx context.Context, tournament *models.Tournament) error
	GetByIDFunc       func(ctx context.Context, id int) (*models.Tournament, error)
	ListFunc          func(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateFunc        func(ctx context.Context, tournament *models.Tournament) error
	MarkCompletedFunc func(ctx context.Context, exec repositories.SQLExecutor, id int) error
	DeleteFunc        func(ctx context.Context, id int) error
	CountFunc         func(ctx context.Context, completed *bool) (int, error)
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	return f.CreateFunc(ctx, t)
}
func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	return f.GetByIDFunc(ctx, id)
}
func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return f.ListFunc(ctx, filter)
}
func (f *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	return f.UpdateFunc(ctx, t)
}
func (f *fakeTournamentRepo) MarkCompleted(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	return f.MarkCompletedFunc(ctx, exec, id)
}
func (f *fakeTournamentRepo) Delete(ctx context.Context, id int) error { return f.DeleteFunc(ctx, id) }
func (f *fakeTournamentRepo) Count(ctx context.Context, completed *bool) (int, error) {
	return f.CountFunc(ctx, completed)
}

type fakeRosterRepo struct {
	SnapshotFunc    func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, memberIDs []int) error
	ListMembersFunc func(ctx context.Context, tournamentID int) ([]models.Member, error)
}

func (f *fakeRosterRepo) Snapshot(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, memberIDs []int) error {
	return f.SnapshotFunc(ctx, exec, tournamentID, memberIDs)
}
func (f *fakeRosterRepo) ListMembers(ctx context.Context, tournamentID int) ([]models.Member, error) {
	return f.ListMembersFunc(ctx, tournamentID)
}

type fakeCourseRepo struct {
	CreateFunc         func(ctx context.Context, course *models.Course) error
	GetByIDFunc        func(ctx context.Context, id int) (*models.Course, error)
	ListFunc           func(ctx context.Context) ([]models.Course, error)
	UpdateFunc         func(ctx context.Context, course *models.Course) error
	UpdatePhotoKeyFunc func(ctx context.Context, id int, photoKey *string) error
	DeleteFunc         func(ctx context.Context, id int) error
	CountFunc          func(ctx context.Context) (int, error)
	ReplaceHolesFunc   func(ctx context.Context, courseID int, holes []models.Hole) error
	ListHolesFunc      func(ctx context.Context, courseID int) ([]models.Hole, error)
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *models.Course) error {
	return f.CreateFunc(ctx, c)
}
func (f *fakeCourseRepo) GetByID(ctx context.Context, id int) (*models.Course, error) {
	return f.GetByIDFunc(ctx, id)
}
func (f *fakeCourseRepo) List(ctx context.Context) ([]models.Course, error) { return f.ListFunc(ctx) }
func (f *fakeCourseRepo) Update(ctx context.Context, c *models.Course) error {
	return f.UpdateFunc(ctx, c)
}
func (f *fakeCourseRepo) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	return f.UpdatePhotoKeyFunc(ctx, id, photoKey)
}
func (f *fakeCourseRepo) Delete(ctx context.Context, id int) error { return f.DeleteFunc(ctx, id) }
func (f *fakeCourseRepo) Count(ctx context.Context) (int, error)   { return f.CountFunc(ctx) }
func (f *fakeCourseRepo) ReplaceHoles(ctx context.Context, courseID int, holes []models.Hole) error {
	return f.ReplaceHolesFunc(ctx, courseID, holes)
}
func (f *fakeCourseRepo) ListHoles(ctx context.Context, courseID int) ([]models.Hole, error) {
	return f.ListHolesFunc(ctx, courseID)
}

type fakeScoreRepo struct {
	UpsertFunc                   func(ctx context.Context, score *models.Score) error
	GetByTournamentAndMemberFunc func(ctx context.Context, tournamentID, memberID int) (*models.Score, error)
	ListByTournamentFunc         func(ctx context.Context, tournamentID int) ([]models.Score, error)
	ListByTournamentsFunc        func(ctx context.Context, tournamentIDs []int) (map[int][]models.Score, error)
	DeleteFunc                   func(ctx context.Context, tournamentID, memberID int) error
	CountAllFunc                 func(ctx context.Context) (int, error)
}

func (f *fakeScoreRepo) Upsert(ctx context.Context, s *models.Score) error {
	return f.UpsertFunc(ctx, s)
}
func (f *fakeScoreRepo) GetByTournamentAndMember(ctx context.Context, tournamentID, memberID int) (*models.Score, error) {
	return f.GetByTournamentAndMemberFunc(ctx, tournamentID, memberID)
}
func (f *fakeScoreRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error) {
	return f.ListByTournamentFunc(ctx, tournamentID)
}
func (f *fakeScoreRepo) ListByTournaments(ctx context.Context, tournamentIDs []int) (map[int][]models.Score, error) {
	return f.ListByTournamentsFunc(ctx, tournamentIDs)
}
func (f *fakeScoreRepo) Delete(ctx context.Context, tournamentID, memberID int) error {
	return f.DeleteFunc(ctx, tournamentID, memberID)
}
func (f *fakeScoreRepo) CountAll(ctx context.Context) (int, error) { return f.CountAllFunc(ctx) }

type fakeUserRepo struct {
	CreateFunc     func(ctx context.Context, user *models.User) error
	GetByIDFunc    func(ctx context.Context, id int) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CountFunc      func(ctx context.Context) (int, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return f.CreateFunc(ctx, u) }
func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return f.GetByIDFunc(ctx, id)
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.GetByEmailFunc(ctx, email)
}
func (f *fakeUserRepo) Count(ctx context.Context) (int, error) { return f.CountFunc(ctx) }

type fakeInviteRepo struct {
	CreateFunc     func(ctx context.Context, invite *models.Invite) error
	GetByTokenFunc func(ctx context.Context, token string) (*models.Invite, error)
	DeleteFunc     func(ctx context.Context, id int) error
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *models.Invite) error {
	return f.CreateFunc(ctx, inv)
}
func (f *fakeInviteRepo) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	return f.GetByTokenFunc(ctx, token)
}
func (f *fakeInviteRepo) Delete(ctx context.Context, id int) error { return f.DeleteFunc(ctx, id) }

type fakeUploader struct {
	UploadFunc    func(ctx context.Context, key string, body io.Reader, contentType string) error
	DeleteFunc    func(ctx context.Context, key string) error
	PublicURLFunc func(key string) string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	return f.UploadFunc(ctx, key, body, contentType)
}
func (f *fakeUploader) Delete(ctx context.Context, key string) error { return f.DeleteFunc(ctx, key) }
func (f *fakeUploader) PublicURL(key string) string                  { return f.PublicURLFunc(key) }

// stubDB hands out a *sql.DB whose transactions always succeed without
// a real database. The repository fakes ignore the executor they get,
// so transactional flows can run end to end in tests.
var registerStubDriver sync.Once

func stubDB(t *testing.T) *sql.DB {
	t.Helper()
	registerStubDriver.Do(func() { sql.Register("stubtx", stubDriver{}) })
	db, err := sql.Open("stubtx", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type fakeNotifier struct {
	published map[int][]models.TournamentResult
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{published: make(map[int][]models.TournamentResult)}
}

func (f *fakeNotifier) PublishResults(tournamentID int, results []models.TournamentResult) {
	f.published[tournamentID] = results
}
