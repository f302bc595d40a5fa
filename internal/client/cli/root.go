package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	snap := a.session.Snapshot()
	if snap.User != nil {
		s = snap.User.Email + " "
	}
	s = s + string(a.Mode)
	return fmt.Sprintf("(%s)", strings.TrimSpace(s))
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to GiveHub (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("givehub %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.session.Snapshot().Authenticated {
				fmt.Println("Available commands: whoami, dashboard, charities, donate, donations, stories, apply, profile, logout, exit")
			} else {
				fmt.Println("Available commands: login, register, charities, stories, exit")
			}

		case "login":
			a.must(a.Login(ctx))
		case "register":
			a.must(a.Register(ctx))
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI()
		case "dashboard":
			a.must(a.Dashboard(ctx))
		case "charities":
			a.must(a.Charities(ctx))
		case "donate":
			a.must(a.Donate(ctx))
		case "donations":
			a.must(a.Donations(ctx))
		case "stories":
			a.must(a.Stories(ctx))
		case "apply":
			a.must(a.ApplyCharity(ctx))
		case "profile":
			a.must(a.UpdateProfile(ctx))
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// must reports input errors (EOF, terminal failures); command-level API
// failures are already printed by the command itself.
func (a *App) must(err error) {
	if err != nil {
		a.logger.Error(context.Background(), "command aborted", "err", err)
	}
}
