package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/repository"
	"github.com/moodlog/server/utils"
)

// TagController manages the mood tag catalog. System tags ship with the
// application and can only be deactivated, never removed.
type TagController struct {
	store *repository.Store
}

// NewTagController creates a new controller instance.
func NewTagController(store *repository.Store) *TagController {
	return &TagController{store: store}
}

// List returns all active tags.
func (t *TagController) List(ctx *gin.Context) {
	tags, err := t.store.Tags.Active()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list tags")
		return
	}
	utils.Success(ctx, tags)
}

// System returns the active system tag catalog.
func (t *TagController) System(ctx *gin.Context) {
	tags, err := t.store.Tags.System()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list tags")
		return
	}
	utils.Success(ctx, tags)
}

type tagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Create adds a user-defined tag with a unique name.
func (t *TagController) Create(ctx *gin.Context) {
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	name := strings.TrimSpace(utils.Sanitize(req.Name))
	if l := len(name); l == 0 || l > 50 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "tag name must be 1-50 characters")
		return
	}

	existing, err := t.store.Tags.ByName(name)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to check tag name")
		return
	}
	if existing != nil {
		utils.Error(ctx, http.StatusConflict, 40920, "tag name already exists")
		return
	}

	tag := models.MoodTag{
		Name:        name,
		Description: utils.Sanitize(req.Description),
		IsActive:    true,
	}
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := t.store.Tags.Create(&tag); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to create tag")
		return
	}
	utils.Success(ctx, tag)
}

// Update renames or recolors a tag. System tag names are fixed.
func (t *TagController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid tag id")
		return
	}

	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	tag, err := t.store.Tags.ByID(uint(id))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load tag")
		return
	}
	if tag == nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "tag not found")
		return
	}

	name := strings.TrimSpace(utils.Sanitize(req.Name))
	if tag.IsSystemTag && name != tag.Name {
		utils.Error(ctx, http.StatusBadRequest, 40021, "system tags cannot be renamed")
		return
	}
	if name != tag.Name {
		existing, err := t.store.Tags.ByName(name)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to check tag name")
			return
		}
		if existing != nil {
			utils.Error(ctx, http.StatusConflict, 40920, "tag name already exists")
			return
		}
		tag.Name = name
	}
	tag.Description = utils.Sanitize(req.Description)
	if req.Color != "" {
		tag.Color = req.Color
	}

	if err := t.store.Tags.Save(tag); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update tag")
		return
	}
	utils.Success(ctx, tag)
}

// Delete removes a user tag. System tags are deactivated instead so the
// shipped catalog and historical entries stay intact.
func (t *TagController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid tag id")
		return
	}

	tag, err := t.store.Tags.ByID(uint(id))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load tag")
		return
	}
	if tag == nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "tag not found")
		return
	}

	if tag.IsSystemTag {
		tag.IsActive = false
		if err := t.store.Tags.Save(tag); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to deactivate tag")
			return
		}
		utils.Success(ctx, gin.H{"deactivated": true})
		return
	}

	if err := t.store.Tags.Delete(tag); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to delete tag")
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}
