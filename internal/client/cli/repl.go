package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	SwitchTenant(ctx context.Context) error
	Files(ctx context.Context) error
	Upload(ctx context.Context) error
	RemoveFile(ctx context.Context) error
	FileURL(ctx context.Context) error
	Search(ctx context.Context) error
	History(ctx context.Context) error
	RemoveHistory(ctx context.Context) error
	ClearHistory(ctx context.Context) error
	APIKeys(ctx context.Context) error
	GenerateKey(ctx context.Context) error
	RevokeKey(ctx context.Context) error
	DeleteKey(ctx context.Context) error
	IPs(ctx context.Context) error
	AddIP(ctx context.Context) error
	RemoveIP(ctx context.Context) error
	LockIP(ctx context.Context) error
	UnlockIP(ctx context.Context) error
	License(ctx context.Context) error
	Audit(ctx context.Context) error
	Tenants(ctx context.Context) error
	CreateTenant(ctx context.Context) error
	UpdateTenant(ctx context.Context) error
	DeleteTenant(ctx context.Context) error
	TenantStats(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	UpdateUser(ctx context.Context) error
	RemoveUser(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	AssignTenant(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the vaultctl console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vault> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "switch-tenant":
			_ = a.SwitchTenant(ctx)

		case "f", "files":
			_ = a.Files(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "rm":
			_ = a.RemoveFile(ctx)

		case "url":
			_ = a.FileURL(ctx)

		case "s", "search":
			_ = a.Search(ctx)

		case "history":
			_ = a.History(ctx)

		case "rmhistory":
			_ = a.RemoveHistory(ctx)

		case "clearhistory":
			_ = a.ClearHistory(ctx)

		case "keys":
			_ = a.APIKeys(ctx)

		case "genkey":
			_ = a.GenerateKey(ctx)

		case "revokekey":
			_ = a.RevokeKey(ctx)

		case "delkey":
			_ = a.DeleteKey(ctx)

		case "ips":
			_ = a.IPs(ctx)

		case "addip":
			_ = a.AddIP(ctx)

		case "rmip":
			_ = a.RemoveIP(ctx)

		case "lockip":
			_ = a.LockIP(ctx)

		case "unlockip":
			_ = a.UnlockIP(ctx)

		case "license":
			_ = a.License(ctx)

		case "audit":
			_ = a.Audit(ctx)

		case "tenants":
			_ = a.Tenants(ctx)

		case "addtenant":
			_ = a.CreateTenant(ctx)

		case "edittenant":
			_ = a.UpdateTenant(ctx)

		case "rmtenant":
			_ = a.DeleteTenant(ctx)

		case "tenantstats":
			_ = a.TenantStats(ctx)

		case "users":
			_ = a.Users(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "edituser":
			_ = a.UpdateUser(ctx)

		case "rmuser":
			_ = a.RemoveUser(ctx)

		case "resetpw":
			_ = a.ResetPassword(ctx)

		case "assign":
			_ = a.AssignTenant(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, signup, exit")
		return
	}
	printlnFn("Available commands: whoami, (f)iles, upload, rm, url, (s)earch, history, rmhistory, clearhistory,")
	printlnFn("  keys, genkey, revokekey, delkey, ips, addip, rmip, lockip, unlockip,")
	printlnFn("  license, audit, switch-tenant, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: tenants, addtenant, edittenant, rmtenant, tenantstats,")
		printlnFn("  users, adduser, edituser, rmuser, resetpw, assign")
	}
}
