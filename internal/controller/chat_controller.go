package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/pkg/serverutils"
	"ai-producer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	GetThreads(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetBlueprint(ctx *fiber.Ctx) error
	DeleteThread(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/stream", c.Stream)
	h.Post("/send", c.Send)
	h.Get("/threads", c.GetThreads)
	h.Get("/history/:threadId", c.GetHistory)
	h.Get("/blueprint/:threadId", c.GetBlueprint)
	h.Delete("/threads/:threadId", c.DeleteThread)
}

// Send is the plain JSON variant of the chat endpoint.
func (c *chatController) Send(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.service.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

// Stream answers over SSE: one sources event, the answer as word-chunked
// token events, then a done event. The pipeline itself runs to completion
// first; streaming is purely presentation.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}

	res, err := c.service.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		writeSSE(w, "sources", dto.StreamSourcesEvent{Sources: res.Sources})

		for _, token := range chunkWords(res.Answer) {
			writeSSE(w, "token", dto.StreamTokenEvent{Token: token})
			w.Flush()
		}

		writeSSE(w, "done", dto.StreamDoneEvent{
			ThreadId:     res.ThreadId,
			Intent:       res.Intent,
			CurrentStage: res.CurrentStage,
		})
		w.Flush()
	}))
	return nil
}

func (c *chatController) GetThreads(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.service.GetThreads(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	threadId := ctx.Params("threadId")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	res, err := c.service.GetHistory(ctx.Context(), userId, threadId, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) GetBlueprint(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	threadId := ctx.Params("threadId")

	res, err := c.service.GetBlueprint(ctx.Context(), userId, threadId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) DeleteThread(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	threadId := ctx.Params("threadId")

	if err := c.service.DeleteThread(ctx.Context(), userId, threadId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Thread deleted", nil))
}

func writeSSE(w *bufio.Writer, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

// chunkWords splits the answer into whitespace-delimited tokens, each
// carrying its trailing space so the client can concatenate verbatim.
func chunkWords(answer string) []string {
	words := strings.Fields(answer)
	tokens := make([]string, len(words))
	for i, word := range words {
		if i < len(words)-1 {
			tokens[i] = word + " "
		} else {
			tokens[i] = word
		}
	}
	return tokens
}
