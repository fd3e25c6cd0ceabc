// Command alumni-chat is a terminal client for the directory assistant.
// It signs in over GraphQL, sends each line to the query generator and runs
// the generated document against the API as the signed-in user.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"alumni-directory/config"
	"alumni-directory/internal/assistant"
)

func main() {
	cfg := config.LoadConfig()

	apiURL := flag.String("api", "http://localhost:"+cfg.Port, "directory API base URL")
	llmURL := flag.String("llm", cfg.LLMServiceURI, "query generator base URL")
	email := flag.String("email", "", "alumni email to sign in with")
	admin := flag.String("admin", "", "admin username to sign in with (instead of -email)")
	password := flag.String("password", os.Getenv("CHAT_PASSWORD"), "password (defaults to $CHAT_PASSWORD)")
	flag.Parse()

	policy, err := assistant.ParsePolicy(cfg.IdentityPolicy)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	exec := assistant.NewHTTPExecutor(*apiURL, "", 30*time.Second)
	bridge := assistant.NewBridge(assistant.NewLLMClient(*llmURL, cfg.LLMTimeout), exec, policy)
	conv := assistant.NewConversation(bridge, assistant.Caller{})

	caller, err := login(ctx, exec, *email, *admin, *password)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	conv.SetCaller(caller)

	fmt.Println("CLP Alumni Directory assistant. Type 'history' to list turns, 'exit' to quit.")
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return
		case "history":
			for _, t := range conv.History() {
				fmt.Printf("[%s] %s: %s\n", t.Timestamp.Format(time.Kitchen), t.Type, firstLine(t.Content))
			}
			continue
		}

		turns, _ := conv.Submit(ctx, line)
		for _, t := range turns {
			printTurn(t)
		}
	}
}

// login signs in with a GraphQL mutation and stores the token on exec.
func login(ctx context.Context, exec *assistant.HTTPExecutor, email, username, password string) (assistant.Caller, error) {
	var doc string
	switch {
	case username != "":
		doc = fmt.Sprintf(`mutation { loginAdmin(Username: %s, Password: %s) { token admin { Admin_id } } }`, quote(username), quote(password))
	case email != "":
		doc = fmt.Sprintf(`mutation { loginAlumni(Email: %s, Password: %s) { token alumni { Alumni_id Name } } }`, quote(email), quote(password))
	default:
		return assistant.Caller{}, errors.New("either -email or -admin is required")
	}

	data, err := exec.Execute(ctx, doc)
	if err != nil {
		return assistant.Caller{}, err
	}
	var payload struct {
		LoginAlumni *struct {
			Token  string `json:"token"`
			Alumni struct {
				AlumniID string `json:"Alumni_id"`
				Name     string `json:"Name"`
			} `json:"alumni"`
		} `json:"loginAlumni"`
		LoginAdmin *struct {
			Token string `json:"token"`
		} `json:"loginAdmin"`
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return assistant.Caller{}, err
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return assistant.Caller{}, err
	}

	switch {
	case payload.LoginAdmin != nil:
		exec.SetToken(payload.LoginAdmin.Token)
		fmt.Printf("signed in as admin %s\n", username)
		return assistant.Caller{Admin: true}, nil
	case payload.LoginAlumni != nil:
		exec.SetToken(payload.LoginAlumni.Token)
		fmt.Printf("signed in as %s (%s)\n", payload.LoginAlumni.Alumni.Name, payload.LoginAlumni.Alumni.AlumniID)
		return assistant.Caller{AlumniID: payload.LoginAlumni.Alumni.AlumniID}, nil
	}
	return assistant.Caller{}, errors.New("unexpected login response")
}

// quote renders s as a GraphQL string literal.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func printTurn(t assistant.Turn) {
	switch t.Type {
	case assistant.TurnUser:
	case assistant.TurnAssistant:
		fmt.Printf("Assistant: %s\n", t.Content)
	case assistant.TurnLLM:
		fmt.Printf("Generated GraphQL: %s\n", t.Content)
	case assistant.TurnResult:
		if t.Table != nil {
			if err := t.Table.Render(os.Stdout); err != nil {
				fmt.Println(t.Content)
			}
			return
		}
		fmt.Println(t.Content)
	case assistant.TurnError:
		fmt.Printf("Error: %s\n", t.Content)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
