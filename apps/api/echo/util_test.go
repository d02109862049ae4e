package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/access"
	"github.com/trezcool/marksheet/core/dashboard"
	"github.com/trezcool/marksheet/core/records"
	"github.com/trezcool/marksheet/core/result"
	"github.com/trezcool/marksheet/core/user"
	testutil "github.com/trezcool/marksheet/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNotLoggedIn  = httpErr{Error: access.ErrNotLoggedIn.Error()}
	errWrongRole    = httpErr{Error: access.ErrWrongRole.Error()}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testApp struct {
	Server
	guard *records.Guard
	auth  *authenticator
}

func setup(t *testing.T) testApp {
	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Marksheet",
		SecretKey: "secret",
		Server: core.ServerConfig{
			DisableReqLogs:     true,
			JWTExpirationDelta: time.Hour,
		},
	}
	logger := core.NewNopLogger()
	guard := testutil.NewGuard(t)

	srv := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		Gate:         access.NewGate(guard),
		UserSvc:      user.NewService(guard, logger),
		ResultSvc:    result.NewService(guard, logger),
		DashboardSvc: dashboard.NewService(guard),
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return testApp{Server: srv, guard: guard, auth: srv.(*server).auth}
}

func (app testApp) token(t *testing.T, usr records.User) string {
	token, err := app.auth.GenerateToken(usr)
	if err != nil {
		t.Fatalf("token(): %v", err)
	}
	return token
}

func (app testApp) run(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		if rec.Body.Len() != 0 {
			t.Errorf("failed! data = %v; want empty body", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
