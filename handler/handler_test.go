package handler_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/handler"
	"github.com/kbukum/errguard/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const defaultBody = `{"error":{"message":"An internal server error occurred. Please try again later.","type":"Error"}}`

// logRecorder captures LogFunc calls.
type logRecorder struct {
	mu     sync.Mutex
	labels []string
	errs   []error
}

func (l *logRecorder) log(label string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.labels = append(l.labels, label)
	l.errs = append(l.errs, err)
}

// testOptions returns options with a captured fallback log and LogFunc.
func testOptions(t *testing.T) (handler.Options, *logRecorder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	rec := &logRecorder{}
	return handler.Options{
		Logger:   rec.log,
		Fallback: logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf),
	}, rec, &buf
}

func serveGin(t *testing.T, w *handler.Wrapper, h handler.GinHandler) *httptest.ResponseRecorder {
	t.Helper()
	engine := gin.New()
	engine.POST("/test", w.Gin(h))
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/test", http.NoBody))
	return rr
}

// statusCarrier is an unrecognized error that happens to carry a status.
type statusCarrier struct {
	StatusCode int
	Message    string
}

func (e *statusCarrier) Error() string         { return e.Message }
func (e *statusCarrier) HTTPStatus() int       { return e.StatusCode }
func (e *statusCarrier) PublicMessage() string { return e.Message }

// namedOnly has a kind name but no trusted status or message.
type namedOnly struct{}

func (namedOnly) Error() string { return "named failure" }
func (namedOnly) Kind() string  { return "TypeError" }

// quotaError is an application-defined Known error outside the errors package.
type quotaError struct{}

func (quotaError) Error() string         { return "quota exceeded" }
func (quotaError) HTTPStatus() int       { return http.StatusTooManyRequests }
func (quotaError) Kind() string          { return "QuotaError" }
func (quotaError) PublicMessage() string { return "Quota exceeded." }

func TestGin_KnownError(t *testing.T) {
	opts, _, _ := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
		return apperrors.BadRequest("Name is required.")
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"Name is required.","type":"BadRequestError"}}`, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestGin_AllPredefinedKinds(t *testing.T) {
	opts, _, _ := testOptions(t)
	w := handler.New(opts)

	for _, kind := range apperrors.Kinds() {
		t.Run(kind.Name, func(t *testing.T) {
			rr := serveGin(t, w, func(c *gin.Context) error { return kind.New("") })

			assert.Equal(t, kind.StatusCode, rr.Code)
			var body apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, kind.DefaultMessage, body.Error.Message)
			assert.Equal(t, kind.Name, body.Error.Type)
		})
	}
}

func TestGin_UnrecognizedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", stderrors.New("Unexpected error.")},
		{"error carrying status", &statusCarrier{StatusCode: http.StatusBadRequest, Message: "leaked detail"}},
		{"wrapped status carrier", fmt.Errorf("db: %w", &statusCarrier{StatusCode: 418, Message: "teapot"})},
	}

	opts, _, _ := testOptions(t)
	w := handler.New(opts)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serveGin(t, w, func(c *gin.Context) error { return tc.err })

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, defaultBody, rr.Body.String())
		})
	}
}

func TestGin_NamedUnrecognizedError(t *testing.T) {
	opts, _, _ := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error { return namedOnly{} })

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"An internal server error occurred. Please try again later.","type":"TypeError"}}`, rr.Body.String())
}

func TestGin_CustomKnownError(t *testing.T) {
	opts, _, _ := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
		return fmt.Errorf("billing: %w", quotaError{})
	})

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"Quota exceeded.","type":"QuotaError"}}`, rr.Body.String())
}

func TestGin_CustomKindPreset(t *testing.T) {
	teapot := apperrors.Kind{Name: "TeapotError", StatusCode: http.StatusTeapot, DefaultMessage: "I'm a teapot."}
	opts, _, _ := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error { return teapot.New("") })

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"I'm a teapot.","type":"TeapotError"}}`, rr.Body.String())
}

func TestGin_EmptyKnownMessageUsesDefault(t *testing.T) {
	opts, _, _ := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
		return &apperrors.AppError{StatusCode: http.StatusConflict, Name: "ConflictError"}
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"An internal server error occurred. Please try again later.","type":"ConflictError"}}`, rr.Body.String())
}

func TestGin_ConfiguredDefaults(t *testing.T) {
	opts, _, _ := testOptions(t)
	opts.DefaultStatusCode = http.StatusServiceUnavailable
	opts.DefaultMessage = "Try again soon."

	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error { return stderrors.New("boom") })

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"Try again soon.","type":"Error"}}`, rr.Body.String())
}

func TestGin_Panics(t *testing.T) {
	opts, _, _ := testOptions(t)
	w := handler.New(opts)

	t.Run("panicked known error keeps status", func(t *testing.T) {
		rr := serveGin(t, w, func(c *gin.Context) error { panic(apperrors.NotFound("")) })
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":{"message":"The requested resource was not found.","type":"NotFoundError"}}`, rr.Body.String())
	})

	t.Run("panicked plain value collapses", func(t *testing.T) {
		rr := serveGin(t, w, func(c *gin.Context) error { panic("something odd") })
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, defaultBody, rr.Body.String())
	})
}

func TestGin_AbortHandlerRepanics(t *testing.T) {
	opts, _, _ := testOptions(t)
	h := handler.New(opts).Gin(func(c *gin.Context) error { panic(http.ErrAbortHandler) })

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { h(c) })
}

func TestGin_SuccessUntouched(t *testing.T) {
	opts, rec, _ := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
		c.JSON(http.StatusCreated, gin.H{"id": 1})
		return nil
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())
	assert.Empty(t, rec.labels)
}

func TestGin_AbortsChain(t *testing.T) {
	opts, _, _ := testOptions(t)
	w := handler.New(opts)
	nextRan := false

	engine := gin.New()
	engine.Use(w.Gin(func(c *gin.Context) error { return apperrors.Forbidden("") }))
	engine.GET("/test", func(c *gin.Context) { nextRan = true })

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, nextRan, "handlers after a failed wrapper must not run")
}

func TestGin_AlreadyWritten(t *testing.T) {
	opts, rec, buf := testOptions(t)
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
		c.String(http.StatusOK, "partial")
		return stderrors.New("late failure")
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "partial", rr.Body.String())
	assert.Len(t, rec.labels, 1, "failure is still logged")
	assert.Contains(t, buf.String(), "Response already written")
}

func TestGin_LoggerLabelAndError(t *testing.T) {
	opts, rec, _ := testOptions(t)
	want := stderrors.New("boom")
	serveGin(t, handler.New(opts), func(c *gin.Context) error { return want })

	require.Len(t, rec.labels, 1)
	assert.Equal(t, handler.LabelImperative, rec.labels[0])
	assert.Same(t, want, rec.errs[0])
}

func TestGin_PanickingLogger(t *testing.T) {
	opts, _, buf := testOptions(t)
	opts.Logger = func(string, error) { panic("logger down") }

	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
		return apperrors.BadRequest("Name is required.")
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"Name is required.","type":"BadRequestError"}}`, rr.Body.String())
	assert.Contains(t, buf.String(), "Error logger panicked")
}

func TestGin_FormatError(t *testing.T) {
	opts, _, _ := testOptions(t)
	var gotReq *http.Request
	var gotErr error
	opts.FormatError = func(err error, r *http.Request) (any, error) {
		gotErr, gotReq = err, r
		return map[string]any{"custom": true, "path": r.URL.Path}, nil
	}

	engine := gin.New()
	var sentReq *http.Request
	want := apperrors.Conflict("")
	engine.POST("/test", handler.New(opts).Gin(func(c *gin.Context) error {
		sentReq = c.Request
		return want
	}))
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/test", http.NoBody))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"custom":true,"path":"/test"}`, rr.Body.String())
	assert.Same(t, sentReq, gotReq)
	assert.Same(t, want, gotErr)
}

func TestGin_NilFormatErrorIsDefault(t *testing.T) {
	opts, _, _ := testOptions(t)
	opts.FormatError = nil
	rr := serveGin(t, handler.New(opts), func(c *gin.Context) error { return stderrors.New("x") })
	assert.JSONEq(t, defaultBody, rr.Body.String())
}

func TestGin_FailingFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format handler.FormatFunc
	}{
		{"returns error", func(error, *http.Request) (any, error) { return nil, stderrors.New("format broke") }},
		{"panics", func(error, *http.Request) (any, error) { panic("format broke") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts, _, buf := testOptions(t)
			opts.FormatError = tc.format

			rr := serveGin(t, handler.New(opts), func(c *gin.Context) error {
				return apperrors.BadRequest("Name is required.")
			})

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"message":"Name is required.","type":"BadRequestError"}`, rr.Body.String())
			assert.Contains(t, buf.String(), "Error formatting error response")
		})
	}
}

func TestSink_CustomSink(t *testing.T) {
	opts, _, _ := testOptions(t)
	sink := &recordingSink{}
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)

	handler.New(opts).Sink(func(r *http.Request, s handler.Sink) error {
		return apperrors.Unauthorized("")
	})(req, sink)

	assert.Equal(t, []string{"status", "json"}, sink.calls)
	assert.Equal(t, http.StatusUnauthorized, sink.status)
	assert.Equal(t, apperrors.ErrorResponse{Error: apperrors.ErrorBody{
		Message: "Unauthorized access. Please log in again.",
		Type:    "UnauthorizedError",
	}}, sink.body)
}

type recordingSink struct {
	calls  []string
	status int
	body   any
}

func (s *recordingSink) Status(code int) {
	s.calls = append(s.calls, "status")
	s.status = code
}

func (s *recordingSink) JSON(_ int, obj any) {
	s.calls = append(s.calls, "json")
	s.body = obj
}

func TestWrapGin_Shorthand(t *testing.T) {
	opts, _, _ := testOptions(t)
	engine := gin.New()
	engine.GET("/test", handler.WrapGin(func(c *gin.Context) error { return apperrors.NotImplemented("") }, opts))

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestNew_DefaultsApplied(t *testing.T) {
	w := handler.New(handler.Options{Fallback: logger.Nop()})
	got := w.Options()

	assert.Equal(t, http.StatusInternalServerError, got.DefaultStatusCode)
	assert.Equal(t, handler.DefaultMessage, got.DefaultMessage)
	assert.NotNil(t, got.Logger)
	assert.NotNil(t, got.Fallback)
}

func TestDefaultLogger_WritesFallback(t *testing.T) {
	var buf bytes.Buffer
	opts := handler.Options{
		Fallback: logger.NewWithWriter(&logger.Config{Level: "info", Format: logger.FormatJSON}, "test", &buf),
	}
	serveGin(t, handler.New(opts), func(c *gin.Context) error { panic("kaboom") })

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, handler.LabelImperative, line["message"])
	assert.Equal(t, "panic: kaboom", line["error"])
	assert.Equal(t, "Error", line["type"])
	assert.NotEmpty(t, line["stack"])
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     handler.Config
		wantErr bool
	}{
		{"default", handler.Config{DefaultStatusCode: 500}, false},
		{"client error", handler.Config{DefaultStatusCode: 400}, false},
		{"success code", handler.Config{DefaultStatusCode: 200}, true},
		{"out of range", handler.Config{DefaultStatusCode: 700}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg handler.Config
	cfg.ApplyDefaults()
	assert.Equal(t, 500, cfg.DefaultStatusCode)
	assert.Equal(t, "An internal server error occurred. Please try again later.", cfg.DefaultMessage)
}

func TestWrapper_ConcurrentUse(t *testing.T) {
	opts, _, _ := testOptions(t)
	w := handler.New(opts)
	engine := gin.New()
	engine.GET("/known", w.Gin(func(c *gin.Context) error { return apperrors.NotFound("") }))
	engine.GET("/plain", w.Gin(func(c *gin.Context) error { return stderrors.New("x") }))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, want := "/known", http.StatusNotFound
			if i%2 == 0 {
				path, want = "/plain", http.StatusInternalServerError
			}
			rr := httptest.NewRecorder()
			engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			assert.Equal(t, want, rr.Code)
		}(i)
	}
	wg.Wait()
}
