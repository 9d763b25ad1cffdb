package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abubakar1702/techgeek/internal/models"
)

// setupHandler starts a throwaway Postgres container, migrates the
// schema and builds a handler on top of it. Skipped under -short and
// when no container runtime is available.
func setupHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("techgeek_test"),
		tcpostgres.WithUsername("techgeek"),
		tcpostgres.WithPassword("techgeek"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("ConnectionString() error = %v", err)
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	err = database.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.PostView{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Bookmark{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	gin.SetMode(gin.TestMode)
	return NewHandler(database, nil), database
}

func seedTestUser(t *testing.T, database *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, FullName: email, IsActive: true}
	if err := database.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedTestPost(t *testing.T, database *gorm.DB, author *models.User, slug string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    slug,
		Slug:     slug,
		Content:  "body",
		Status:   models.PostStatusPublished,
		AuthorID: author.ID,
	}
	if err := database.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func postComment(t *testing.T, handler *Handler, userID int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(identityKey, Identity{UserID: userID, Authenticated: true})
	handler.CreateComment(c)
	return w
}

func loadNotifications(t *testing.T, database *gorm.DB, recipientID int64) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	err := database.Where("recipient_id = ?", recipientID).
		Order("id ASC").
		Find(&notifications).Error
	if err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return notifications
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	handler, database := setupHandler(t)

	author := seedTestUser(t, database, "author@example.com")
	reader := seedTestUser(t, database, "reader@example.com")
	post := seedTestPost(t, database, author, "first-post")

	w := postComment(t, handler, reader.ID, `{"slug": "first-post", "content": "nice read"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	notifications := loadNotifications(t, database, author.ID)
	if len(notifications) != 1 {
		t.Fatalf("author notifications = %d, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Verb != models.NotifyVerbComment || n.ActorID != reader.ID ||
		!n.PostID.Valid || n.PostID.Int64 != post.ID || !n.CommentID.Valid {
		t.Errorf("notification = {Verb: %q, ActorID: %d, PostID: %v, CommentID: %v}, want comment from reader on post",
			n.Verb, n.ActorID, n.PostID, n.CommentID)
	}
}

// A reply notifies the parent comment's author, not the post author.
func TestCreateReplyNotifiesParentAuthorOnly(t *testing.T) {
	handler, database := setupHandler(t)

	postAuthor := seedTestUser(t, database, "author@example.com")
	commenter := seedTestUser(t, database, "commenter@example.com")
	replier := seedTestUser(t, database, "replier@example.com")
	post := seedTestPost(t, database, postAuthor, "first-post")

	if w := postComment(t, handler, commenter.ID,
		fmt.Sprintf(`{"post": %d, "content": "first"}`, post.ID)); w.Code != http.StatusCreated {
		t.Fatalf("comment status = %d, body %s", w.Code, w.Body.String())
	}

	var parent models.Comment
	if err := database.First(&parent).Error; err != nil {
		t.Fatalf("load parent comment: %v", err)
	}

	w := postComment(t, handler, replier.ID,
		fmt.Sprintf(`{"post": %d, "parent": %d, "content": "second"}`, post.ID, parent.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("reply status = %d, body %s", w.Code, w.Body.String())
	}

	fromReply := loadNotifications(t, database, commenter.ID)
	if len(fromReply) != 1 || fromReply[0].Verb != models.NotifyVerbReply || fromReply[0].ActorID != replier.ID {
		t.Fatalf("commenter notifications = %+v, want one reply from replier", fromReply)
	}

	// The post author heard about the comment, never about the reply.
	forAuthor := loadNotifications(t, database, postAuthor.ID)
	if len(forAuthor) != 1 || forAuthor[0].Verb != models.NotifyVerbComment {
		t.Errorf("post author notifications = %+v, want only the comment", forAuthor)
	}
}

func TestCreateCommentOnOwnPostSuppressed(t *testing.T) {
	handler, database := setupHandler(t)

	author := seedTestUser(t, database, "author@example.com")
	post := seedTestPost(t, database, author, "first-post")

	w := postComment(t, handler, author.ID,
		fmt.Sprintf(`{"post": %d, "content": "note to self"}`, post.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if got := loadNotifications(t, database, author.ID); len(got) != 0 {
		t.Errorf("notifications for self-comment = %d, want 0", len(got))
	}
}

func TestCreateCommentRejectsCrossPostParent(t *testing.T) {
	handler, database := setupHandler(t)

	author := seedTestUser(t, database, "author@example.com")
	reader := seedTestUser(t, database, "reader@example.com")
	first := seedTestPost(t, database, author, "first-post")
	second := seedTestPost(t, database, author, "second-post")

	parent := &models.Comment{PostID: first.ID, AuthorID: reader.ID, Content: "on first", IsApproved: true}
	if err := database.Create(parent).Error; err != nil {
		t.Fatalf("seed parent: %v", err)
	}

	w := postComment(t, handler, reader.ID,
		fmt.Sprintf(`{"post": %d, "parent": %d, "content": "wrong thread"}`, second.ID, parent.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d, body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestCreateCommentRejectsNestedReply(t *testing.T) {
	handler, database := setupHandler(t)

	author := seedTestUser(t, database, "author@example.com")
	reader := seedTestUser(t, database, "reader@example.com")
	post := seedTestPost(t, database, author, "first-post")

	parent := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "top", IsApproved: true}
	if err := database.Create(parent).Error; err != nil {
		t.Fatalf("seed parent: %v", err)
	}
	reply := &models.Comment{
		PostID:     post.ID,
		AuthorID:   reader.ID,
		ParentID:   sql.NullInt64{Int64: parent.ID, Valid: true},
		Content:    "reply",
		IsApproved: true,
	}
	if err := database.Create(reply).Error; err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	w := postComment(t, handler, author.ID,
		fmt.Sprintf(`{"post": %d, "parent": %d, "content": "too deep"}`, post.ID, reply.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d, body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}
