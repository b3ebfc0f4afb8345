package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/request"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
	"github.com/sangkips/academy-console/pkg/pagination"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentHandler handles roster HTTP requests
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func rosterQuery(req *request.RosterQuery) *service.RosterQuery {
	return &service.RosterQuery{
		Search: req.Search,
		Status: req.Status,
		Params: pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
	}
}

// List returns one page of the roster
// @Summary List students
// @Tags students
// @Produce json
// @Param search query string false "Name, code or contact number"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Success 200 {object} response.APIResponse
// @Router /api/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	var req request.RosterQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.studentService.Roster(c.Request.Context(), GetSession(c), rosterQuery(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Students retrieved successfully", result)
}

// Lookup matches students by name for the receipt form.
func (h *StudentHandler) Lookup(c *gin.Context) {
	students, err := h.studentService.Lookup(c.Request.Context(), GetSession(c), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Students retrieved successfully", students)
}

// Export downloads the filtered roster as a spreadsheet.
func (h *StudentHandler) Export(c *gin.Context) {
	var req request.RosterQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	data, err := h.studentService.Export(c.Request.Context(), GetSession(c), rosterQuery(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, xlsxContentType, "students.xlsx", data)
}

// Create registers a student
// @Summary Register student
// @Tags students
// @Accept json
// @Produce json
// @Param request body request.RegisterStudentRequest true "Student details"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /api/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req request.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.studentService.Register(c.Request.Context(), GetSession(c), &service.RegisterInput{
		StudentInput: backend.StudentInput{
			Name:                   req.Name,
			StudentClass:           req.StudentClass,
			DOB:                    req.DOB,
			SchoolName:             req.SchoolName,
			MotherName:             req.MotherName,
			FatherName:             req.FatherName,
			ContactNumber:          req.ContactNumber.String(),
			SecondaryContactNumber: req.SecondaryContactNumber.String(),
			Email:                  req.Email,
			Address:                req.Address,
			City:                   req.City,
			Course:                 req.Course,
			Level:                  req.Level.String(),
			Status:                 req.Status,
			Password:               req.Password,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Student registered successfully", output)
}

// Get returns one student
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentService.Get(c.Request.Context(), GetSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student retrieved successfully", student)
}

// Update edits the level or status of a student
// @Summary Update student field
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body request.UpdateStudentRequest true "Field and value"
// @Success 200 {object} response.APIResponse
// @Router /api/students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	var req request.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	edit, err := h.studentService.UpdateField(c.Request.Context(), GetSession(c), c.Param("id"), entity.StudentField(req.Field), req.Value.String())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student updated successfully", edit)
}

// Edits lists the tracked inline edits of a student.
func (h *StudentHandler) Edits(c *gin.Context) {
	edits, err := h.studentService.Edits(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Edits retrieved successfully", edits)
}
