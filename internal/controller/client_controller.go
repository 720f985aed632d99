package controller

import (
	"responsagility-be/internal/dto"
	"responsagility-be/internal/pkg/serverutils"
	"responsagility-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IClientController interface {
	RegisterRoutes(r fiber.Router)
	GetCoach(ctx *fiber.Ctx) error
	UpdateCoach(ctx *fiber.Ctx) error
}

type clientController struct {
	clientService service.IClientService
	auth          *serverutils.AuthVerifier
}

func NewClientController(clientService service.IClientService, auth *serverutils.AuthVerifier) IClientController {
	return &clientController{
		clientService: clientService,
		auth:          auth,
	}
}

func (c *clientController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/client")
	h.Use(c.auth.Middleware())
	h.Get("coach", c.GetCoach)
	h.Put("coach", c.UpdateCoach)
}

func (c *clientController) GetCoach(ctx *fiber.Ctx) error {
	clientId, _, err := clientFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.clientService.GetCoach(ctx.Context(), clientId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *clientController) UpdateCoach(ctx *fiber.Ctx) error {
	clientId, email, err := clientFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCoachRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.clientService.UpdateCoach(ctx.Context(), clientId, email, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
