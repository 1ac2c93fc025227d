package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Register(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Menu(ctx context.Context) error
	Gestiones(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Clientes(ctx context.Context) error
	Usuarios(ctx context.Context) error
	Roles(ctx context.Context) error
	Gestion(ctx context.Context, args []string) error
	Cliente(ctx context.Context, args []string) error
	Empleado(ctx context.Context, args []string) error
	TipoEmpleado(ctx context.Context, args []string) error
	TipoGestion(ctx context.Context, args []string) error
	Supervisor(ctx context.Context, args []string) error
	Usuario(ctx context.Context, args []string) error
	Rol(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the fieldadmin CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  help, login, register, go <path>, exit | quit
//
//	Logged in:
//	  help, whoami, refresh, passwd, menu, go <path>,
//	  gestiones [desde hasta [estado]], dashboard, clientes,
//	  usuarios, roles, logout, exit | quit
//
//	Editing (logged in):
//	  gestion new | edit <id> | assign <id> | rm <id>
//	  cliente [ls] | new | edit <id> | rm <id> | self
//	  empleado, tipo-empleado, tipo-gestion [ls] | new | edit <id> | rm <id>
//	  supervisor <id> [set <tecnico-id>...]
//	  usuario new | edit <id> | rm <id> | roles <id> | role add|rm <id> <rol-id>
//	  rol new | edit <id> | rm <id>
//
// Errors returned by command handlers are printed and otherwise ignored,
// which keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("fa %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, refresh, passwd, menu, go <path>, gestiones [desde hasta [estado]], dashboard, clientes, usuarios, roles, logout, exit")
				printlnFn("Editing: gestion, cliente, empleado, tipo-empleado, tipo-gestion, supervisor, usuario, rol (run one without arguments for its usage)")
			} else {
				printlnFn("Available commands: login, register, go <path>, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "refresh":
			err = a.Refresh(ctx)

		case "register":
			err = a.Register(ctx)

		case "passwd":
			err = a.ChangePassword(ctx)

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			err = a.Go(ctx, args[0])

		case "menu":
			err = a.Menu(ctx)

		case "gestiones":
			err = a.Gestiones(ctx, args)

		case "dashboard":
			err = a.Dashboard(ctx)

		case "clientes":
			err = a.Clientes(ctx)

		case "usuarios":
			err = a.Usuarios(ctx)

		case "roles":
			err = a.Roles(ctx)

		case "gestion":
			err = a.Gestion(ctx, args)

		case "cliente":
			err = a.Cliente(ctx, args)

		case "empleado":
			err = a.Empleado(ctx, args)

		case "tipo-empleado":
			err = a.TipoEmpleado(ctx, args)

		case "tipo-gestion":
			err = a.TipoGestion(ctx, args)

		case "supervisor":
			err = a.Supervisor(ctx, args)

		case "usuario":
			err = a.Usuario(ctx, args)

		case "rol":
			err = a.Rol(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
