package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/delivery/http/routes"
	"skillswap/internal/domain/swap"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestIntegration_SwapLifecycleAndRatings(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedTwoMembers(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	swapUC := usecase.NewSwapUsecase(repository.NewPostgresSwapRequestRepository(db))
	ratingUC := usecase.NewRatingUsecase(
		repository.NewPostgresRatingRepository(db),
		repository.NewPostgresSwapRequestRepository(db),
		nil,
	)
	skillUC := usecase.NewSkillUsecase(
		repository.NewPostgresSkillRepository(db),
		repository.NewPostgresProfileRepository(db),
	)

	// Requester asks for the provider's skill, offering their own.
	req, err := swapUC.CreateRequest(ctx, seed.requesterID, usecase.CreateSwapRequestInput{
		ProviderID:       seed.providerID,
		OfferedSkillID:   seed.requesterSkillID,
		RequestedSkillID: seed.providerSkillID,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	defer func() {
		_, _ = db.Exec(ctx, `DELETE FROM ratings WHERE swap_request_id = $1`, req.ID)
		_, _ = db.Exec(ctx, `DELETE FROM swap_requests WHERE id = $1`, req.ID)
	}()
	if req.Status != swap.StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}

	// An unapproved skill must never enter a request.
	_, err = swapUC.CreateRequest(ctx, seed.requesterID, usecase.CreateSwapRequestInput{
		ProviderID:       seed.providerID,
		OfferedSkillID:   seed.unapprovedSkillID,
		RequestedSkillID: seed.providerSkillID,
	})
	if !errors.Is(err, usecase.ErrValidation) {
		t.Fatalf("unapproved skill: expected ErrValidation, got %v", err)
	}

	// The offered skill is frozen while the request is open.
	if err := skillUC.RemoveSkill(ctx, seed.requesterID, seed.requesterSkillID); !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("frozen skill delete: expected ErrConflict, got %v", err)
	}

	// Only the provider may accept.
	if _, err := swapUC.Transition(ctx, req.ID, seed.requesterID, swap.StatusAccepted); !errors.Is(err, usecase.ErrPermission) {
		t.Fatalf("requester accept: expected ErrPermission, got %v", err)
	}
	accepted, err := swapUC.Transition(ctx, req.ID, seed.providerID, swap.StatusAccepted)
	if err != nil {
		t.Fatalf("provider accept: %v", err)
	}
	if accepted.Status != swap.StatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	// A second accept loses the edge check.
	if _, err := swapUC.Transition(ctx, req.ID, seed.providerID, swap.StatusAccepted); !errors.Is(err, usecase.ErrInvalidTransition) {
		t.Fatalf("double accept: expected ErrInvalidTransition, got %v", err)
	}

	// Accepted requests cannot be withdrawn.
	if err := swapUC.DeleteRequest(ctx, req.ID, seed.requesterID); !errors.Is(err, usecase.ErrInvalidTransition) {
		t.Fatalf("withdraw accepted: expected ErrInvalidTransition, got %v", err)
	}

	// No rating before completion.
	if _, err := ratingUC.SubmitRating(ctx, seed.requesterID, usecase.SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        5,
	}); !errors.Is(err, usecase.ErrValidation) {
		t.Fatalf("premature rating: expected ErrValidation, got %v", err)
	}

	if _, err := swapUC.Transition(ctx, req.ID, seed.requesterID, swap.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Both sides rate once; the second attempt by the same rater conflicts.
	r1, err := ratingUC.SubmitRating(ctx, seed.requesterID, usecase.SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        5,
	})
	if err != nil {
		t.Fatalf("requester rating: %v", err)
	}
	if r1.RatedID != seed.providerID {
		t.Fatalf("requester rating must land on the provider")
	}
	if _, err := ratingUC.SubmitRating(ctx, seed.requesterID, usecase.SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        1,
	}); !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("duplicate rating: expected ErrConflict, got %v", err)
	}
	if _, err := ratingUC.SubmitRating(ctx, seed.providerID, usecase.SubmitRatingInput{
		SwapRequestID: req.ID,
		Rating:        4,
	}); err != nil {
		t.Fatalf("provider rating: %v", err)
	}

	agg, err := ratingUC.AverageRating(ctx, seed.providerID)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if agg.Count != 1 || agg.Average != 5 {
		t.Fatalf("provider aggregate: expected {5, 1}, got {%v, %d}", agg.Average, agg.Count)
	}

	assertProfileOverHTTP(t, seed, db)
}

// assertProfileOverHTTP drives one request through the full fiber stack:
// bearer token, auth middleware, handler, response envelope.
func assertProfileOverHTTP(t *testing.T, seed seededMembers, db database.DB) {
	t.Helper()

	f := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())
	routes.NewRegistry(seed.cfg, db, nil).Register(f)

	jwtSvc := jwt.NewHMACService(
		seed.cfg.JWT.AccessSecret,
		seed.cfg.JWT.RefreshSecret,
		seed.cfg.JWT.AccessExpiresIn,
		seed.cfg.JWT.RefreshExpiresIn,
	)
	token, err := jwtSvc.GenerateAccessToken(seed.requesterID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	httpReq := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/"+seed.providerID.String(), nil)
	httpReq.Header.Set("Authorization", "Bearer "+token)

	res, err := f.Test(httpReq)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body semanticResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != fiber.StatusOK {
		t.Fatalf("envelope status: expected 200, got %d", body.Status)
	}
	if len(body.Data) == 0 {
		t.Fatalf("expected profile data in envelope")
	}

	// Without a token the same route is refused.
	anon := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/"+seed.providerID.String(), nil)
	anonRes, err := f.Test(anon)
	if err != nil {
		t.Fatalf("anonymous request: %v", err)
	}
	defer func() { _ = anonRes.Body.Close() }()
	if anonRes.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous caller, got %d", anonRes.StatusCode)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := firstNonEmpty(os.Getenv("SKILLSWAP_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := firstNonEmpty(os.Getenv("SKILLSWAP_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := firstNonEmpty(os.Getenv("SKILLSWAP_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := firstNonEmpty(os.Getenv("SKILLSWAP_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("SKILLSWAP_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := firstNonEmpty(os.Getenv("SKILLSWAP_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLSWAP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

type seededMembers struct {
	cfg config.Config

	requesterID       uuid.UUID
	providerID        uuid.UUID
	requesterSkillID  uuid.UUID
	providerSkillID   uuid.UUID
	unapprovedSkillID uuid.UUID
}

func seedTwoMembers(t *testing.T, ctx context.Context, db database.DB) seededMembers {
	t.Helper()

	out := seededMembers{
		cfg: config.Config{
			App: config.AppConfig{AppName: "SkillSwap", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     firstNonEmpty(os.Getenv("SKILLSWAP_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
				RefreshSecret:    firstNonEmpty(os.Getenv("SKILLSWAP_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
		},
		requesterID: uuid.New(),
		providerID:  uuid.New(),
	}

	ensureProfile(t, ctx, db, out.requesterID, "Swap Requester")
	ensureProfile(t, ctx, db, out.providerID, "Swap Provider")

	out.requesterSkillID = ensureSkill(t, ctx, db, out.requesterID, "Guitar Lessons", true)
	out.providerSkillID = ensureSkill(t, ctx, db, out.providerID, "Sourdough Baking", true)
	out.unapprovedSkillID = ensureSkill(t, ctx, db, out.requesterID, "Unreviewed Welding", false)

	return out
}

func ensureProfile(t *testing.T, ctx context.Context, db database.DB, id uuid.UUID, name string) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO profiles (id, name, is_public) VALUES ($1, $2, TRUE)
		 ON CONFLICT (id) DO NOTHING`, id, name)
	if err != nil {
		t.Fatalf("seed profile %s: %v", name, err)
	}
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, ownerID uuid.UUID, name string, approved bool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(ctx,
		`INSERT INTO skills (user_id, name, type, is_approved)
		 VALUES ($1, $2, 'offered', $3) RETURNING id`, ownerID, name, approved).Scan(&id)
	if err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}
	return id
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededMembers) {
	t.Helper()

	for _, q := range []struct {
		sql  string
		args []any
	}{
		{`DELETE FROM ratings WHERE rater_id IN ($1, $2)`, []any{seed.requesterID, seed.providerID}},
		{`DELETE FROM swap_requests WHERE requester_id IN ($1, $2)`, []any{seed.requesterID, seed.providerID}},
		{`DELETE FROM skills WHERE user_id IN ($1, $2)`, []any{seed.requesterID, seed.providerID}},
		{`DELETE FROM profiles WHERE id IN ($1, $2)`, []any{seed.requesterID, seed.providerID}},
	} {
		if _, err := db.Exec(ctx, q.sql, q.args...); err != nil {
			t.Logf("cleanup: %v", err)
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
