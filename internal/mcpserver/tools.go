// Package mcpserver exposes the task list as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// addTodoTool returns a tool definition for adding a todo.
func addTodoTool() mcp.Tool {
	return mcp.NewTool("add_todo",
		mcp.WithDescription("Add a plain todo task to the end of the list."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What needs doing (e.g., read book)")),
	)
}

// addDeadlineTool returns a tool definition for adding a deadline.
func addDeadlineTool() mcp.Tool {
	return mcp.NewTool("add_deadline",
		mcp.WithDescription("Add a task that must be done by a date. Dates written as yyyy.m.d are shown as '11 Nov 2020'; anything else is kept as typed."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What needs doing (e.g., return book)")),
		mcp.WithString("by",
			mcp.Required(),
			mcp.Description("Due date (e.g., 2020.11.11 or 'next monday')")),
	)
}

// addEventTool returns a tool definition for adding an event.
func addEventTool() mcp.Tool {
	return mcp.NewTool("add_event",
		mcp.WithDescription("Add an event with a start and an end. Dates follow the same rules as add_deadline."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the event is (e.g., project meeting)")),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Start date or time")),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("End date or time")),
	)
}

// markTaskTool returns a tool definition for marking a task as done.
func markTaskTool() mcp.Tool {
	return mcp.NewTool("mark_task",
		mcp.WithDescription("Mark the task at the given 1-based position as done."),
		mcp.WithString("index",
			mcp.Required(),
			mcp.Description("Task number as shown by list_tasks (e.g., \"2\")")),
	)
}

// unmarkTaskTool returns a tool definition for marking a task as not done.
func unmarkTaskTool() mcp.Tool {
	return mcp.NewTool("unmark_task",
		mcp.WithDescription("Mark the task at the given 1-based position as not done."),
		mcp.WithString("index",
			mcp.Required(),
			mcp.Description("Task number as shown by list_tasks (e.g., \"2\")")),
	)
}

// deleteTaskTool returns a tool definition for deleting a task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete the task at the given 1-based position. Later tasks move up by one."),
		mcp.WithString("index",
			mcp.Required(),
			mcp.Description("Task number as shown by list_tasks (e.g., \"2\")")),
	)
}

// findTasksTool returns a tool definition for searching tasks.
func findTasksTool() mcp.Tool {
	return mcp.NewTool("find_tasks",
		mcp.WithDescription("List the tasks whose description contains a keyword (case-sensitive). Results are numbered over the matches only."),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Text to search for")),
	)
}

// listTasksTool returns a tool definition for listing every task.
func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List every task with its 1-based position, kind, completion and dates."),
	)
}

// clearTasksTool returns a tool definition for removing every task.
func clearTasksTool() mcp.Tool {
	return mcp.NewTool("clear_tasks",
		mcp.WithDescription("Remove every task from the list."),
	)
}
