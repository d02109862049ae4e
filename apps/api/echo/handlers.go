package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/access"
	"github.com/trezcool/marksheet/core/dashboard"
	"github.com/trezcool/marksheet/core/grade"
	"github.com/trezcool/marksheet/core/records"
	"github.com/trezcool/marksheet/core/result"
	"github.com/trezcool/marksheet/core/user"
)

type handlers struct {
	auth      *authenticator
	gate      *access.Gate
	users     *user.Service
	results   *result.Service
	dashboard *dashboard.Service
	logger    core.Logger
}

func (h *handlers) register(g *echo.Group, jwt echo.MiddlewareFunc) {
	requireRole := func(role records.Role) echo.MiddlewareFunc {
		return roleMiddleware(h.auth, h.gate, role)
	}

	// un-authed endpoints
	g.POST("/login", h.login)

	// authed endpoints
	ag := g.Group("", jwt)
	ag.GET("/me", h.me, requireRole(""))
	ag.GET("/dashboard", h.home, requireRole(""))

	admin := ag.Group("/admin", requireRole(records.RoleAdmin))
	admin.GET("", h.adminDashboard)
	admin.GET("/users", h.queryUsers)
	admin.POST("/users", h.createUser)
	admin.DELETE("/users/:username", h.deleteUser)

	teacher := ag.Group("/teacher", requireRole(records.RoleTeacher))
	teacher.GET("", h.teacherDashboard)
	teacher.POST("/results", h.submitResult)

	student := ag.Group("/student", requireRole(records.RoleStudent))
	student.GET("", h.studentDashboard)
}

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		User  UserPayload `json:"user"`
	}

	// UserPayload is a User as exposed by the API, without its password.
	UserPayload struct {
		Username string       `json:"username"`
		Role     records.Role `json:"role"`
		FullName string       `json:"full_name"`
	}

	// SubmitResultRequest mirrors the marks form: parallel subject and mark lists.
	// Marks and attendance may be sent as JSON strings or numbers.
	SubmitResultRequest struct {
		StudentID  string      `json:"student_id"`
		Subjects   []string    `json:"subjects"`
		Marks      []RawNumber `json:"marks"`
		Attendance RawNumber   `json:"attendance"`
	}

	// RawNumber keeps the text of a JSON string or literal as is.
	// Parsing is left to the grade engine, which degrades bad numbers to 0.
	RawNumber string

	StudentPayload struct {
		Result        *records.Result `json:"result"`
		AveragePct    string          `json:"average_pct,omitempty"`
		AttendancePct string          `json:"attendance_pct,omitempty"`
	}
)

func (n *RawNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*n = RawNumber(str)
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && (data[0] == '[' || data[0] == '{'):
		*n = ""
	default:
		*n = RawNumber(data)
	}
	return nil
}

func rawStrings(nums []RawNumber) []string {
	strs := make([]string, 0, len(nums))
	for _, n := range nums {
		strs = append(strs, string(n))
	}
	return strs
}

func newUserPayload(usr records.User) UserPayload {
	return UserPayload{Username: usr.Username, Role: usr.Role, FullName: usr.FullName}
}

func newStudentPayload(view dashboard.StudentView) StudentPayload {
	payload := StudentPayload{Result: view.Result}
	if view.Result != nil {
		payload.AveragePct = grade.Percent(view.Result.Average)
		payload.AttendancePct = grade.Percent(view.Result.Attendance)
	}
	return payload
}

// Handlers

func (h *handlers) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	usr, err := h.users.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := h.auth.GenerateToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	h.logger.Info("user logged in", usr)
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: newUserPayload(usr)})
}

func (h *handlers) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newUserPayload(usr))
}

// home returns the dashboard of the current user's role.
func (h *handlers) home(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	view, err := h.dashboard.For(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	if sv, ok := view.(dashboard.StudentView); ok {
		return ctx.JSON(http.StatusOK, newStudentPayload(sv))
	}
	return ctx.JSON(http.StatusOK, view)
}

func (h *handlers) adminDashboard(ctx echo.Context) error {
	view, err := h.dashboard.Admin(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building admin dashboard")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (h *handlers) queryUsers(ctx echo.Context) error {
	users, err := h.users.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	payload := make([]UserPayload, 0, len(users))
	for _, usr := range users {
		payload = append(payload, newUserPayload(usr))
	}
	return ctx.JSON(http.StatusOK, payload)
}

func (h *handlers) createUser(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	usr, err := h.users.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, newUserPayload(usr))
}

func (h *handlers) deleteUser(ctx echo.Context) error {
	if err := h.users.Delete(ctx.Request().Context(), ctx.Param("username")); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (h *handlers) teacherDashboard(ctx echo.Context) error {
	view, err := h.dashboard.Teacher(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building teacher dashboard")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (h *handlers) submitResult(ctx echo.Context) error {
	var data SubmitResultRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitResultRequest")
	}

	res, err := h.results.Submit(ctx.Request().Context(), result.Submission{
		StudentID:  data.StudentID,
		Entries:    grade.Pair(data.Subjects, rawStrings(data.Marks)),
		Attendance: string(data.Attendance),
	})
	if err != nil {
		return errors.Wrap(err, "submitting result")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (h *handlers) studentDashboard(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	view, err := h.dashboard.Student(ctx.Request().Context(), usr.Username)
	if err != nil {
		return errors.Wrap(err, "building student dashboard")
	}
	return ctx.JSON(http.StatusOK, newStudentPayload(view))
}
