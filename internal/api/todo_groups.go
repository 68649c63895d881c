package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
)

type createTodoGroupRequest struct {
	Nom string `json:"nom" form:"nom" validate:"required"`
}

type updateTodoGroupRequest struct {
	Nom *string `json:"nom" form:"nom"`
}

var todoGroupMessages = map[string]string{
	"nom": "name is required",
}

type deleteTodoGroupResponse struct {
	ID           string `json:"id"`
	Deleted      bool   `json:"deleted"`
	TodosDeleted int64  `json:"todosDeleted"`
}

func (s *Server) createTodoGroup(c *gin.Context) {
	var req createTodoGroupRequest
	if !s.bind(c, &req, true) {
		return
	}
	if fields := s.check(&req, todoGroupMessages); len(fields) > 0 {
		response.Validation(c, fields)
		return
	}

	group, err := s.groups.Create(c.Request.Context(), c.Param("owner"), req.Nom)
	if err != nil {
		s.fail(c, err, "todo group")
		return
	}

	response.Created(c, group)
}

func (s *Server) listTodoGroups(c *gin.Context) {
	groups, err := s.groups.ListByOwner(c.Request.Context(), c.Param("owner"))
	if err != nil {
		s.fail(c, err, "todo group")
		return
	}
	response.OK(c, groups)
}

func (s *Server) updateTodoGroup(c *gin.Context) {
	var req updateTodoGroupRequest
	if !s.bind(c, &req, true) {
		return
	}

	group, err := s.groups.Update(c.Request.Context(), c.Param("id"), req.Nom)
	if err != nil {
		s.fail(c, err, "todo group")
		return
	}

	response.OK(c, group)
}

func (s *Server) deleteTodoGroup(c *gin.Context) {
	id := c.Param("id")
	result, err := s.groups.Delete(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "todo group")
		return
	}
	response.OK(c, deleteTodoGroupResponse{
		ID:           id,
		Deleted:      result.GroupDeleted,
		TodosDeleted: result.TodosDeleted,
	})
}
