package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrelima-dev/meuestoque/internal/auth"
	api "github.com/andrelima-dev/meuestoque/internal/http"
	handler "github.com/andrelima-dev/meuestoque/internal/http/handlers"
	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/prefs"
	"github.com/andrelima-dev/meuestoque/internal/repo"
	"github.com/andrelima-dev/meuestoque/internal/snapshot"
)

var (
	token  string
	router http.Handler

	productRepo  *repo.InMemoryProductRepository
	saleRepo     *repo.InMemorySaleRepository
	taskRepo     *repo.InMemoryTaskRepository
	movementRepo *repo.InMemoryMovementRepository
	snapshotRepo *repo.InMemorySnapshotRepository
	userRepo     *repo.InMemoryUserRepository
	redisServer  *miniredis.Miniredis
)

func init() {
	setupTestRepos("secret")
	router = api.NewRouter()

	var err error
	token, err = generateToken("admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	saleRepo = repo.NewInMemorySaleRepository(productRepo)
	handler.SetSaleRepo(saleRepo)

	taskRepo = repo.NewInMemoryTaskRepository()
	handler.SetTaskRepo(taskRepo)

	movementRepo = repo.NewInMemoryMovementRepository()
	handler.SetMovementRepo(movementRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	snapshotRepo = repo.NewInMemorySnapshotRepository()
	handler.SetSnapshotRecorder(snapshot.NewRecorder(productRepo, snapshotRepo))

	var err error
	redisServer, err = miniredis.Run()
	if err != nil {
		panic(fmt.Sprintf("error starting miniredis: %v", err))
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	handler.SetPrefsStore(prefs.NewStore(rdb))
	handler.SetRefreshStore(auth.NewRefreshStore(rdb))
	handler.SetBanStore(auth.NewBanStore(rdb))

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})
}

func clearAll() {
	productRepo.Clear()
	saleRepo.Clear()
	taskRepo.Clear()
	movementRepo.Clear()
	snapshotRepo.Clear()
	redisServer.FlushAll()
}

// Each request gets its own client address so the per-IP rate limiter
// never interferes with a test run.
var addrSeq atomic.Int64

func newRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	n := addrSeq.Add(1)
	req.RemoteAddr = fmt.Sprintf("10.%d.%d.1:1234", n/200, n%200)
	return req
}

func do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doAuthed(method, path string, body any) *httptest.ResponseRecorder {
	return doAs(token, method, path, body)
}

func doAs(userToken, method, path string, body any) *httptest.ResponseRecorder {
	req := newRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+userToken)
	return do(req)
}

func generateToken(username, password string) (string, error) {
	w := do(newRequest(http.MethodPost, "/login", handler.CredentialsRequest{
		Username: username,
		Password: password,
	}))
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProduct(p handler.ProductRequest) *httptest.ResponseRecorder {
	return doAuthed(http.MethodPost, "/products", p)
}

func mustCreateProduct(p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("product setup failed with status %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding product response: %v", err))
	}
	return resp
}

func today() string {
	return time.Now().Format("2006-01-02")
}

type errorsEnvelope struct {
	Errors []handler.FieldError `json:"errors"`
}
