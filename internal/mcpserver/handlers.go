package mcpserver

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/notgpt/internal/command"
	"github.com/JamesPrial/notgpt/internal/tasklist"
)

// TaskTools handles tool calls against one task list.
// Calls are serialised so the list keeps a single writer.
type TaskTools struct {
	mu         sync.Mutex
	dispatcher *command.Dispatcher
}

// NewTaskTools creates a TaskTools operating on list.
func NewTaskTools(list *tasklist.TaskList) *TaskTools {
	return &TaskTools{dispatcher: command.NewDispatcher(list)}
}

// HandleAddTodo adds a todo.
// Parameters:
//   - description (string, required)
func (h *TaskTools) HandleAddTodo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(h.dispatcher.Todo(ctx, desc)), nil
}

// HandleAddDeadline adds a deadline.
// Parameters:
//   - description (string, required)
//   - by (string, required)
func (h *TaskTools) HandleAddDeadline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	by, err := request.RequireString("by")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(h.dispatcher.DeadlineParts(ctx, desc, by)), nil
}

// HandleAddEvent adds an event.
// Parameters:
//   - description (string, required)
//   - from (string, required)
//   - to (string, required)
func (h *TaskTools) HandleAddEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := request.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := request.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(h.dispatcher.EventParts(ctx, desc, from, to)), nil
}

// HandleMarkTask marks a task as done.
func (h *TaskTools) HandleMarkTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.runIndexed(ctx, request, command.OpMark)
}

// HandleUnmarkTask marks a task as not done.
func (h *TaskTools) HandleUnmarkTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.runIndexed(ctx, request, command.OpUnmark)
}

// HandleDeleteTask deletes a task.
func (h *TaskTools) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.runIndexed(ctx, request, command.OpDelete)
}

// HandleFindTasks lists matching tasks.
// Parameters:
//   - keyword (string, required)
func (h *TaskTools) HandleFindTasks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := request.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(h.dispatcher.Find(keyword)), nil
}

// HandleListTasks lists every task.
func (h *TaskTools) HandleListTasks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(h.dispatcher.ListAll()), nil
}

// HandleClearTasks removes every task.
func (h *TaskTools) HandleClearTasks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(h.dispatcher.Clear(ctx)), nil
}

// runIndexed reads the "index" parameter and runs op on that task. The text
// is passed through unchanged so the command layer owns number validation.
func (h *TaskTools) runIndexed(ctx context.Context, request mcp.CallToolRequest, op string) (*mcp.CallToolResult, error) {
	index, err := request.RequireString("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return mcp.NewToolResultText(command.Execute(ctx, h.dispatcher.List(), index, op)), nil
}
