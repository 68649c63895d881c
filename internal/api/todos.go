package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
	"github.com/mmynk/todolist/internal/models"
)

type createTodoRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

type updateTodoRequest struct {
	Text *string `json:"text" form:"text"`
	Done *bool   `json:"done" form:"done"`
}

var todoMessages = map[string]string{
	"text": "text is required",
}

type deleteTodoResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (s *Server) createTodo(c *gin.Context) {
	var req createTodoRequest
	if !s.bind(c, &req, true) {
		return
	}
	if fields := s.check(&req, todoMessages); len(fields) > 0 {
		response.Validation(c, fields)
		return
	}

	todo, err := s.todos.Create(c.Request.Context(), c.Param("owner"), c.Param("group"), req.Text)
	if err != nil {
		s.fail(c, err, "todo")
		return
	}

	response.Created(c, todo)
}

func (s *Server) listTodos(c *gin.Context) {
	todos, err := s.todos.ListByGroup(c.Request.Context(), c.Param("todoGroup"))
	if err != nil {
		s.fail(c, err, "todo")
		return
	}
	response.OK(c, todos)
}

func (s *Server) updateTodo(c *gin.Context) {
	var req updateTodoRequest
	if !s.bind(c, &req, true) {
		return
	}

	todo, err := s.todos.Update(c.Request.Context(), c.Param("id"), models.TodoPatch{
		Text: req.Text,
		Done: req.Done,
	})
	if err != nil {
		s.fail(c, err, "todo")
		return
	}

	response.OK(c, todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id := c.Param("id")
	deleted, err := s.todos.Delete(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "todo")
		return
	}
	response.OK(c, deleteTodoResponse{ID: id, Deleted: deleted})
}
