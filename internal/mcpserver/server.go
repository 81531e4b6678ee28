package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/notgpt/internal/tasklist"
)

// NewServer creates and configures a new MCP server with every task tool
// registered against list.
func NewServer(list *tasklist.TaskList) (*server.MCPServer, error) {
	h := NewTaskTools(list)

	s := server.NewMCPServer(
		"notgpt",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Adding tasks
	s.AddTool(addTodoTool(), h.HandleAddTodo)
	s.AddTool(addDeadlineTool(), h.HandleAddDeadline)
	s.AddTool(addEventTool(), h.HandleAddEvent)

	// Changing tasks by position
	s.AddTool(markTaskTool(), h.HandleMarkTask)
	s.AddTool(unmarkTaskTool(), h.HandleUnmarkTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)

	// Reading and clearing
	s.AddTool(findTasksTool(), h.HandleFindTasks)
	s.AddTool(listTasksTool(), h.HandleListTasks)
	s.AddTool(clearTasksTool(), h.HandleClearTasks)

	return s, nil
}
