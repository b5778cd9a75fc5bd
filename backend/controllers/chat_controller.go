package controllers

import (
	"bufio"
	"fmt"
	"strings"

	"evolv/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type ChatController struct {
	Ollama *services.OllamaClient
}

func NewChatController(ollama *services.OllamaClient) *ChatController {
	return &ChatController{Ollama: ollama}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat is the buffered endpoint: the whole model response in one JSON body.
// Upstream failure degrades to a fixed fallback message, never an error.
func (cc *ChatController) Chat(c *fiber.Ctx) error {
	var req chatRequest
	_ = c.BodyParser(&req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.JSON(fiber.Map{"response": services.ChatEmptyPromptMessage})
	}

	response, err := cc.Ollama.Generate(message)
	if err != nil {
		cc.Ollama.Log.WithError(err).Error("chat generate failed")
		return c.JSON(fiber.Map{"response": services.ChatErrorMessage})
	}
	if response == "" {
		return c.JSON(fiber.Map{"response": services.ChatNoResponseMessage})
	}
	return c.JSON(fiber.Map{"response": response})
}

// StreamChat relays model chunks as server-sent events.
func (cc *ChatController) StreamChat(c *fiber.Ctx) error {
	var req chatRequest
	_ = c.BodyParser(&req)
	message := strings.TrimSpace(req.Message)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if message == "" {
			writeEvent(w, "error", services.ChatEmptyPromptMessage)
			return
		}

		err := cc.Ollama.Stream(message, func(chunk string) error {
			return writeEvent(w, "message", chunk)
		})
		if err != nil {
			cc.Ollama.Log.WithError(err).Error("chat stream failed")
			writeEvent(w, "error", services.ChatStreamErrorMessage)
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}
