package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"userbase/app/dto"
	"userbase/app/services"
	"userbase/app/validate"
)

type UserController struct {
	Users  *services.UserService
	Logger zerolog.Logger
}

func NewUserController(users *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{Users: users, Logger: logger}
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.List(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("users retrieved", users))
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := c.Users.Get(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("user retrieved", user))
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}
	if errs := validate.CreateUser(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.Fail("validation failed", errs...))
		return
	}
	user, err := c.Users.Create(r.Context(), req)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.OK("user created", user))
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}
	if errs := validate.UpdateUser(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.Fail("validation failed", errs...))
		return
	}
	user, err := c.Users.Update(r.Context(), id, req)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("user updated", user))
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Users.Delete(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("user deleted", nil))
}

func (c *UserController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	logInternal(c.Logger, r, err, status)
	writeJSON(w, status, dto.Fail(msg))
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("invalid user id"))
		return 0, false
	}
	return uint(id), true
}
