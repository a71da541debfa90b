package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController exposes maze generation and retrieval over HTTP.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze controller requires a maze service")
	}
	return &MazeController{
		mazeService: ms,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.mazeByID)
		mazes.GET("/:ID/arena", mc.arena)
		mazes.GET("/:ID/solution", mc.solution)
		mazes.GET("/:ID/ascii", mc.ascii)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.generate)
}

// generate handles maze creation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.mazeService.Generate(ctx.Request.Context(), request.Rows, request.Columns, request.Seed)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response, err := newMazeResponse(record)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// mazeByID returns the passage matrices of a stored maze.
func (mc *MazeController) mazeByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	record, err := mc.mazeService.ByID(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response, err := newMazeResponse(record)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// arena returns the wall geometry of a stored maze.
func (mc *MazeController) arena(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	arena, err := mc.mazeService.Arena(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, arena)
}

// solution returns the path from the ball to the goal.
func (mc *MazeController) solution(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	path, err := mc.mazeService.Solve(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &SolutionResponse{
		ID:     id.String(),
		Length: len(path),
		Path:   path,
	})
}

// ascii renders a stored maze as text.
func (mc *MazeController) ascii(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	record, err := mc.mazeService.ByID(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	layout, err := record.Layout()
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, layout.String())
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return id, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimension), errors.Is(err, domain.ErrDimensionTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrLayoutNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while processing maze"})
	}
}
