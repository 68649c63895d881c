package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/service"
)

type signUpRequest struct {
	Nom      string `json:"nom" form:"nom" validate:"required,alpha"`
	Prenom   string `json:"prenom" form:"prenom" validate:"required,alpha"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

var signUpMessages = map[string]string{
	"email":    "enter a valid email address",
	"nom":      "last name must contain only letters",
	"prenom":   "first name must contain only letters",
	"password": "password must be at least 6 characters",
}

type signInRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

var signInMessages = map[string]string{
	"email":    "enter a valid email address",
	"password": "password must be at least 6 characters",
}

type signInResponse struct {
	Authenticated bool         `json:"authenticated"`
	Token         string       `json:"token"`
	User          *models.User `json:"user"`
}

func (s *Server) signUp(c *gin.Context) {
	var req signUpRequest
	if !s.bind(c, &req, true) {
		return
	}
	if fields := s.check(&req, signUpMessages); len(fields) > 0 {
		response.Validation(c, fields)
		return
	}

	user, err := s.users.SignUp(c.Request.Context(), service.SignUpInput{
		LastName:  req.Nom,
		FirstName: req.Prenom,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		s.fail(c, err, "user")
		return
	}

	response.Created(c, user)
}

func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if !s.bind(c, &req, true) {
		return
	}
	if fields := s.check(&req, signInMessages); len(fields) > 0 {
		response.Validation(c, fields)
		return
	}

	result, err := s.users.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err, "user")
		return
	}

	response.OK(c, signInResponse{
		Authenticated: true,
		Token:         result.Token,
		User:          result.User,
	})
}

func (s *Server) findUsers(c *gin.Context) {
	users, err := s.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		s.fail(c, err, "user")
		return
	}
	response.OK(c, users)
}
