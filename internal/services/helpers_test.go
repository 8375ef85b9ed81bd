package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type recordingRevalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingRevalidator) Revalidate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

func (r *recordingRevalidator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type testEnv struct {
	db           *gorm.DB
	store        *repositories.Store
	revalidator  *recordingRevalidator
	identity     *IdentityResolver
	graph        *SocialGraphService
	content      *ContentService
	interaction  *InteractionService
	notification *NotificationService
	profile      *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	))

	store := repositories.NewStore(db)
	rv := &recordingRevalidator{}
	deps := Deps{Store: store, Revalidator: rv, Log: zerolog.Nop()}
	identity := NewIdentityResolver(store, zerolog.Nop())
	return &testEnv{
		db:           db,
		store:        store,
		revalidator:  rv,
		identity:     identity,
		graph:        NewSocialGraphService(deps, identity),
		content:      NewContentService(deps, identity),
		interaction:  NewInteractionService(deps, identity),
		notification: NewNotificationService(deps, identity),
		profile:      NewProfileService(deps, identity),
	}
}

// newUser provisions a user and returns it with a matching session.
func (e *testEnv) newUser(t *testing.T, handle string) (*models.User, *models.Session) {
	t.Helper()
	sess := &models.Session{
		ExternalID: "ext-" + handle,
		Email:      handle + "@example.com",
		Name:       handle,
		Username:   handle,
	}
	user, err := e.identity.ResolveOrProvision(context.Background(), sess)
	require.NoError(t, err)
	return user, sess
}

func (e *testEnv) newPost(t *testing.T, sess *models.Session, content string) *PostView {
	t.Helper()
	post, err := e.content.CreatePost(context.Background(), sess, CreatePostInput{
		Content:  content,
		ImageURL: "https://img.example.com/" + uuid.NewString() + ".png",
	})
	require.NoError(t, err)
	return post
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

// failNotificationInserts makes every insert into notifications fail.
func (e *testEnv) failNotificationInserts(t *testing.T) {
	t.Helper()
	err := e.db.Callback().Create().Before("gorm:create").Register("test:fail_notifications", func(db *gorm.DB) {
		if db.Statement.Table == "notifications" {
			_ = db.AddError(errors.New("forced notification failure"))
		}
	})
	require.NoError(t, err)
}

func seedPostAt(t *testing.T, db *gorm.DB, authorID, content string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{AuthorID: authorID, Content: content, Image: "https://img.example.com/x.png", CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Omit(clause.Associations).Create(p).Error)
	return p
}

// insertAfterDelete commits row from within the first delete on table that
// finds nothing, simulating a concurrent writer winning the race.
func (e *testEnv) insertAfterDelete(t *testing.T, table string, row interface{}) {
	t.Helper()
	var once sync.Once
	err := e.db.Callback().Delete().After("gorm:delete").Before("gorm:commit_or_rollback_transaction").
		Register("test:insert_after_delete", func(db *gorm.DB) {
			if db.Statement.Table != table || db.RowsAffected != 0 {
				return
			}
			once.Do(func() {
				insertAlongside(db, row)
			})
		})
	require.NoError(t, err)
}

// insertAfterUserQuery inserts row once, right after the first users query
// whose SQL mentions column.
func (e *testEnv) insertAfterUserQuery(t *testing.T, column string, row *models.User) {
	t.Helper()
	var once sync.Once
	err := e.db.Callback().Query().After("gorm:query").Register("test:insert_after_query", func(db *gorm.DB) {
		if db.Statement.Table != "users" || !strings.Contains(db.Statement.SQL.String(), column) {
			return
		}
		once.Do(func() {
			insertAlongside(db, row)
		})
	})
	require.NoError(t, err)
}

// insertAlongside creates row on the connection of the running statement,
// ignoring any error that statement already carries.
func insertAlongside(db *gorm.DB, row interface{}) {
	tx := db.Session(&gorm.Session{NewDB: true})
	tx.Error = nil
	if err := tx.Create(row).Error; err != nil {
		_ = db.AddError(err)
	}
}
