package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// InterfacePersonController defines the person controller interface
type InterfacePersonController interface {
	Add()
	Get()
	Update()
	Delete()
	List()
	AddRelation()
	Relations()
	FamilyRelations()
}

// PersonController handles the members of family trees
type PersonController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPersonController creates a new person controller
func NewPersonController(ctx *gin.Context, container *container.ServiceContainer) *PersonController {
	return &PersonController{
		Ctx:       ctx,
		Container: container,
	}
}

// AddRelationRequest links two persons explicitly
type AddRelationRequest struct {
	PersonID     uint   `json:"person_id" binding:"required" example:"1"`
	RelatedToID  uint   `json:"related_to_id" binding:"required" example:"2"`
	RelationType string `json:"relation_type" binding:"required" example:"brother"`
}

func (c *PersonController) service() services.InterfacePersonService {
	return c.Container.GetService("person").(services.InterfacePersonService)
}

// Add inserts a person into a family
// @Summary      Add person
// @Tags         Person
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.PersonInput true "Person"
// @Success      201  {object}  models.Person
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/person [post]
func (c *PersonController) Add() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var input services.PersonInput
	if err := c.Ctx.ShouldBindJSON(&input); err != nil {
		response.ParamError(c.Ctx, "Invalid person fields")
		return
	}

	person, err := c.service().Add(userID, input)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to add member")
		return
	}
	response.Created(c.Ctx, "Member added successfully", person)
}

// Get returns one person
// @Summary      Get person
// @Tags         Person
// @Produce      json
// @Param        id path int true "Person ID"
// @Success      200  {object}  models.Person
// @Failure      404  {object}  ErrorResponse
// @Router       /api/person/{id} [get]
func (c *PersonController) Get() {
	personID, ok := uintParam(c.Ctx, "id", "person ID")
	if !ok {
		return
	}

	person, err := c.service().Get(personID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Server error")
		return
	}
	response.Success(c.Ctx, gin.H{"person": person})
}

// Update overwrites a person's fields
// @Summary      Update person
// @Tags         Person
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Person ID"
// @Param        request body services.PersonInput true "Person"
// @Success      200  {object}  models.Person
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/person/{id} [put]
func (c *PersonController) Update() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	personID, ok := uintParam(c.Ctx, "id", "person ID")
	if !ok {
		return
	}

	var input services.PersonInput
	if err := c.Ctx.ShouldBindJSON(&input); err != nil {
		response.ParamError(c.Ctx, "Invalid person fields")
		return
	}

	person, err := c.service().Update(userID, personID, input)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to update person")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Person updated successfully", person)
}

// Delete removes a person and unlinks its user account
// @Summary      Delete person
// @Tags         Person
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Person ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/person/{id} [delete]
func (c *PersonController) Delete() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	personID, ok := uintParam(c.Ctx, "id", "person ID")
	if !ok {
		return
	}

	if err := c.service().Delete(userID, personID); err != nil {
		handleServiceError(c.Ctx, err, "Failed to remove member")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Member removed successfully", nil)
}

// List searches persons by family, address and name
// @Summary      Search people
// @Tags         Person
// @Produce      json
// @Param        family_id query int false "Family ID"
// @Param        address query string false "Address contains"
// @Param        name query string false "Name contains"
// @Success      200  {array}  models.Person
// @Router       /api/people [get]
func (c *PersonController) List() {
	var filter services.PeopleFilter
	if raw := c.Ctx.Query("family_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "invalid family_id")
			return
		}
		filter.FamilyID = uint(id)
	}
	filter.Address = c.Ctx.Query("address")
	filter.Name = c.Ctx.Query("name")

	people, err := c.service().List(filter)
	if err != nil {
		handleServiceError(c.Ctx, err, "DB error")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "People fetched successfully", gin.H{"people": people})
}

// AddRelation records an explicit relation between two persons
// @Summary      Add relation
// @Tags         Person
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddRelationRequest true "Relation"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/add-relation [post]
func (c *PersonController) AddRelation() {
	var req AddRelationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "All relation fields are required")
		return
	}

	relation, err := c.service().AddRelation(req.PersonID, req.RelatedToID, req.RelationType)
	if err != nil {
		handleServiceError(c.Ctx, err, "Database error")
		return
	}
	response.Created(c.Ctx, "Relation added", gin.H{"relationId": relation.ID})
}

// Relations lists the explicit relations of a person
// @Summary      Person relations
// @Tags         Person
// @Produce      json
// @Param        person_id path int true "Person ID"
// @Success      200  {array}  services.RelationView
// @Router       /api/relations/{person_id} [get]
func (c *PersonController) Relations() {
	personID, ok := uintParam(c.Ctx, "person_id", "person ID")
	if !ok {
		return
	}

	relations, err := c.service().Relations(personID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Database error")
		return
	}
	response.Success(c.Ctx, gin.H{"relations": relations})
}

// FamilyRelations shows the family tree from one member's perspective
// @Summary      Family relations of a person
// @Tags         Person
// @Produce      json
// @Param        personId path int true "Person ID"
// @Success      200  {object}  services.FamilyRelations
// @Failure      404  {object}  ErrorResponse
// @Router       /api/profile/{personId}/family-relations [get]
func (c *PersonController) FamilyRelations() {
	personID, ok := uintParam(c.Ctx, "personId", "person ID")
	if !ok {
		return
	}

	relations, err := c.service().FamilyRelations(personID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Server error")
		return
	}
	response.Success(c.Ctx, relations)
}

// HandlePersonFunc returns a gin handler for person requests
func HandlePersonFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPersonController(ctx, container)

		switch method {
		case "add":
			controller.Add()
		case "get":
			controller.Get()
		case "update":
			controller.Update()
		case "delete":
			controller.Delete()
		case "list":
			controller.List()
		case "addRelation":
			controller.AddRelation()
		case "relations":
			controller.Relations()
		case "familyRelations":
			controller.FamilyRelations()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
