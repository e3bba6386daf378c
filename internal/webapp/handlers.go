package webapp

import (
	"context"
	"errors"
	"net/http"

	"fitcoach-web/internal/audit"
	"fitcoach-web/internal/fitapi"
	"fitcoach-web/internal/guard"
	"fitcoach-web/internal/session"
	"fitcoach-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call the API client, return JSON.
// Pages are rendered client-side; handlers return the view payloads.
type Handlers struct {
	API           *fitapi.Client
	Audit         *audit.Service
	Cache         session.ProfileCache // nil when no cache is configured
	SecureCookies bool
}

// newSession builds the per-request session manager over the cookie store.
func (h Handlers) newSession(c *gin.Context) *session.Manager {
	return session.NewManager(session.NewCookieStore(c, h.SecureCookies), h.API, h.Cache)
}

/* ===================== AUTH FLOWS ===================== */

// Login signs the user in: remote credential check, then session.SignIn.
// Failures are surfaced to the form; this is the one observable session error.
func (h Handlers) Login(c *gin.Context) {
	var req fitapi.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Document == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "document and password required"})
		return
	}

	ctx := c.Request.Context()
	res, err := h.API.Login(ctx, req)
	if err != nil {
		h.auditLog(c, h.Audit.LogLoginFailure(ctx, c.ClientIP(), "credentials rejected"))
		writeAPIError(c, err)
		return
	}

	sess := h.newSession(c)
	user, err := sess.SignIn(ctx, res.AccessToken, res.RefreshToken)
	if err != nil {
		h.auditLog(c, h.Audit.LogLoginFailure(ctx, c.ClientIP(), "profile fetch after login failed"))
		writeAPIError(c, err)
		return
	}

	h.auditLog(c, h.Audit.LogLogin(ctx, user.ID, user.Role.String(), c.ClientIP()))

	redirect := user.Role.Home()
	if redirect == "" {
		redirect = "/profile"
	}
	c.JSON(http.StatusOK, gin.H{"redirect": redirect, "user": user})
}

// Logout clears the session unconditionally and sends the browser to /login.
func (h Handlers) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.newSession(c)

	// Best-effort actor resolution for the audit trail.
	sess.Hydrate(ctx)
	actorID := ""
	if u := sess.User(); u != nil {
		actorID = u.ID
	}

	sess.SignOut(ctx)
	h.auditLog(c, h.Audit.LogSignOut(ctx, actorID, c.ClientIP()))

	c.Redirect(http.StatusSeeOther, guard.LoginPath)
}

func (h Handlers) Register(c *gin.Context) {
	var req fitapi.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	user, err := h.API.Register(c.Request.Context(), req)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "redirect": guard.LoginPath})
}

func (h Handlers) CompleteRegistration(c *gin.Context) {
	var req fitapi.CompleteRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	user, err := h.API.CompleteRegistration(c.Request.Context(), req)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "redirect": guard.LoginPath})
}

/* ===================== DASHBOARDS ===================== */

// AdminHome returns the admin dashboard payload: user-base stats.
func (h Handlers) AdminHome(c *gin.Context) {
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}

	users, err := h.API.ListUsers(c.Request.Context(), token)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}

	stats := gin.H{"total": len(users), "active": 0, "blocked": 0, "pending": 0}
	for _, u := range users {
		switch u.Status {
		case fitapi.StatusActive:
			stats["active"] = stats["active"].(int) + 1
		case fitapi.StatusBlocked:
			stats["blocked"] = stats["blocked"].(int) + 1
		case fitapi.StatusPending:
			stats["pending"] = stats["pending"].(int) + 1
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User(), "stats": stats})
}

func (h Handlers) AdminUsers(c *gin.Context) {
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	users, err := h.API.ListUsers(c.Request.Context(), token)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h Handlers) BlockUser(c *gin.Context) {
	h.userAction(c, h.API.BlockUser)
}

func (h Handlers) UnblockUser(c *gin.Context) {
	h.userAction(c, h.API.UnblockUser)
}

// PersonalHome returns the trainer dashboard payload: their students.
func (h Handlers) PersonalHome(c *gin.Context) {
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	students, err := h.API.ListStudents(c.Request.Context(), token)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User(), "students": students})
}

func (h Handlers) PersonalStudents(c *gin.Context) {
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	students, err := h.API.ListStudents(c.Request.Context(), token)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h Handlers) InviteStudent(c *gin.Context) {
	var req fitapi.InviteStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name and email required"})
		return
	}

	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	invited, err := h.API.InviteStudent(c.Request.Context(), token, req)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": invited})
}

func (h Handlers) ListWorkouts(c *gin.Context) {
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	workouts, err := h.API.ListWorkouts(c.Request.Context(), token)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func (h Handlers) CreateWorkout(c *gin.Context) {
	var req fitapi.Workout
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.StudentID == "" || req.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "studentId and name required"})
		return
	}
	if req.FrequencyDays < 1 || req.FrequencyDays > 7 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "frequencyDays must be 1..7"})
		return
	}

	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	created, err := h.API.CreateWorkout(c.Request.Context(), token, req)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workout": created})
}

// StudentHome returns the student dashboard payload: assigned workouts.
func (h Handlers) StudentHome(c *gin.Context) {
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	workouts, err := h.API.ListWorkouts(c.Request.Context(), token)
	if err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User(), "workouts": workouts})
}

func (h Handlers) Profile(c *gin.Context) {
	sess, _, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User()})
}

/* ===================== VIEWS ===================== */

func (h Handlers) LoginView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": "login"})
}

func (h Handlers) RegisterView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": "register"})
}

func (h Handlers) Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

/* ===================== HELPERS ===================== */

// resolve hydrates the session and returns the bearer token. A session that
// fails to hydrate is already cleared; the browser is sent back to login.
func (h Handlers) resolve(c *gin.Context) (*session.Manager, string, bool) {
	sess := h.newSession(c)
	sess.Hydrate(c.Request.Context())
	if !sess.Authenticated() {
		c.Redirect(http.StatusSeeOther, guard.LoginPath)
		c.Abort()
		return nil, "", false
	}
	cred, _ := sess.Credential()
	return sess, cred.AccessToken, true
}

func (h Handlers) userAction(c *gin.Context, call func(ctx context.Context, token, userID string) error) {
	userID := c.Param("id")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user id required"})
		return
	}
	sess, token, ok := h.resolve(c)
	if !ok {
		return
	}
	if err := call(c.Request.Context(), token, userID); err != nil {
		h.collapseOn401(c, sess, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// collapseOn401 maps an API failure to a response. A 401 means the
// credential expired mid-session: drop it and bounce to login.
func (h Handlers) collapseOn401(c *gin.Context, sess *session.Manager, err error) {
	if errors.Is(err, fitapi.ErrUnauthorized) {
		sess.SignOut(c.Request.Context())
		c.Redirect(http.StatusSeeOther, guard.LoginPath)
		c.Abort()
		return
	}
	writeAPIError(c, err)
}

// writeAPIError surfaces a remote API failure as a user-visible notification.
func writeAPIError(c *gin.Context, err error) {
	if errors.Is(err, fitapi.ErrUnauthorized) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	var apiErr *fitapi.APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
}

func (h Handlers) auditLog(c *gin.Context, err error) {
	if err != nil {
		logger.FromGin(c).Warn("audit append failed", "err", err)
	}
}
