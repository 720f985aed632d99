package controller

import (
	"responsagility-be/internal/dto"
	"responsagility-be/internal/pkg/serverutils"
	"responsagility-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPracticeController interface {
	RegisterRoutes(r fiber.Router)
	SubmitAnswer(ctx *fiber.Ctx) error
	ShowReflection(ctx *fiber.Ctx) error
	ListReflections(ctx *fiber.Ctx) error
}

type practiceController struct {
	practiceService service.IPracticeService
	auth            *serverutils.AuthVerifier
}

func NewPracticeController(practiceService service.IPracticeService, auth *serverutils.AuthVerifier) IPracticeController {
	return &practiceController{
		practiceService: practiceService,
		auth:            auth,
	}
}

func (c *practiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/practice")
	h.Use(c.auth.Middleware())
	h.Post("answer", c.SubmitAnswer)
	h.Get("reflections", c.ListReflections)
	h.Get("reflection/:date", c.ShowReflection)
}

func clientFromToken(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	sub, _ := ctx.Locals("client_id").(string)
	clientId, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", serverutils.NewBadRequestError("token subject is not a valid client id")
	}
	email, _ := ctx.Locals("email").(string)
	return clientId, email, nil
}

func (c *practiceController) SubmitAnswer(ctx *fiber.Ctx) error {
	clientId, email, err := clientFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.PracticeAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.practiceService.SubmitAnswer(ctx.Context(), clientId, email, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *practiceController) ShowReflection(ctx *fiber.Ctx) error {
	clientId, _, err := clientFromToken(ctx)
	if err != nil {
		return err
	}

	date := ctx.Params("date")
	if err := serverutils.ValidateRequest(dto.ReflectionDateParam{Date: date}); err != nil {
		return serverutils.NewBadRequestError("date must be YYYY-MM-DD")
	}

	res, err := c.practiceService.GetReflection(ctx.Context(), clientId, date)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *practiceController) ListReflections(ctx *fiber.Ctx) error {
	clientId, _, err := clientFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.practiceService.ListReflectionDates(ctx.Context(), clientId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
