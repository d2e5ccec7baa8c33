package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

type employeeRequest struct {
	FirstName string           `json:"first_name" binding:"required,max=50"`
	LastName  string           `json:"last_name" binding:"required,max=50"`
	Position  string           `json:"position" binding:"required,oneof=waiter cook bartender manager administrator"`
	Phone     string           `json:"phone" binding:"max=20"`
	Email     string           `json:"email" binding:"required,email,max=100"`
	HireDate  string           `json:"hire_date" binding:"required,isodate"`
	Salary    *decimal.Decimal `json:"salary"`
	IsActive  *bool            `json:"is_active"`
}

type employeeUpdateRequest struct {
	FirstName *string          `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string          `json:"last_name" binding:"omitempty,max=50"`
	Position  *string          `json:"position" binding:"omitempty,oneof=waiter cook bartender manager administrator"`
	Phone     *string          `json:"phone" binding:"omitempty,max=20"`
	Email     *string          `json:"email" binding:"omitempty,email,max=100"`
	HireDate  *string          `json:"hire_date" binding:"omitempty,isodate"`
	Salary    *decimal.Decimal `json:"salary"`
	IsActive  *bool            `json:"is_active"`
}

// GetAllEmployees -> ?active=true untuk karyawan aktif saja
func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	query := ec.DB.Order("last_name, first_name")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if position := c.Query("position"); position != "" {
		query = query.Where("position = ?", position)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee detail", employee)
}

// CreateEmployee
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, ErrNegative)
		return
	}

	hired, _ := utils.ParseDate(req.HireDate)
	employee := models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		Phone:     req.Phone,
		Email:     req.Email,
		HireDate:  hired,
		IsActive:  true,
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New employee created: %s %s (%s)", employee.FirstName, employee.LastName, employee.Position)
	utils.RespondJSON(c, http.StatusCreated, "Employee created successfully", employee)
}

// UpdateEmployee
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req employeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, ErrNegative)
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.HireDate != nil {
		employee.HireDate, _ = utils.ParseDate(*req.HireDate)
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := ec.DB.Save(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee updated", employee)
}

// DeleteEmployee -> karyawan yang masih punya order tidak bisa dihapus
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var orders int64
	if err := ec.DB.Model(&models.Order{}).Where("employee_id = ?", id).Count(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if orders > 0 {
		utils.RespondError(c, http.StatusConflict, &CustomError{"Employee has orders, deactivate instead"})
		return
	}

	if err := ec.DB.Delete(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee deleted", gin.H{"id": employee.ID})
}
