package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lyrix/internal/shared"
	tu "github.com/desertthunder/lyrix/internal/testing"
	"github.com/urfave/cli/v3"
)

// run executes args against the registered commands and returns what was written to output.
func run(t *testing.T, runner *Runner, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner.output = output

	app := &cli.Command{Name: "lyrix", Commands: runner.register()}
	err := app.Run(context.Background(), append([]string{"lyrix"}, args...))
	return output.String(), err
}

func newTestRunner(translator *tu.MockTranslator) *Runner {
	return NewRunner(RunnerOpts{
		Translator:   translator,
		Connectivity: shared.Static(true),
		Logger:       shared.NewLogger(&bytes.Buffer{}),
	})
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			httpClient := &http.Client{}
			translator := &tu.MockTranslator{}
			connectivity := shared.Static(false)

			runner := NewRunner(RunnerOpts{
				Config:       config,
				Logger:       logger,
				Output:       output,
				Input:        input,
				HTTPClient:   httpClient,
				Translator:   translator,
				Connectivity: connectivity,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.translator != translator {
				t.Error("expected translator to be set")
			}
			if runner.connectivity != connectivity {
				t.Error("expected connectivity to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with nil translator uses the configured endpoint", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.translator == nil {
				t.Error("expected default translator to be set")
			}
			if runner.connectivity == nil {
				t.Error("expected default connectivity probe to be set")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, name := range []string{"setup", "merge", "normalize", "translate", "languages", "serve", "tui"} {
			if !names[name] {
				t.Errorf("expected %s command to be registered", name)
			}
		}
	})

	t.Run("readSource", func(t *testing.T) {
		t.Run("reads stdin for dash", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: strings.NewReader("from stdin")})

			got, err := runner.readSource("-")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != "from stdin" {
				t.Errorf("expected stdin contents, got %q", got)
			}
		})

		t.Run("reports missing files", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			_, err := runner.readSource(filepath.Join(t.TempDir(), "missing.txt"))
			if err == nil || !strings.Contains(err.Error(), "failed to read") {
				t.Errorf("expected read error, got %v", err)
			}
		})
	})
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	tu.MustWriteFile(t, first, "Hello\n[Chorus]\nWorld\n")
	tu.MustWriteFile(t, second, "Bonjour\nMonde\n")

	t.Run("prints text by default", func(t *testing.T) {
		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "merge", "-a", first, "-b", second)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := "Hello\nBonjour\nWorld\nMonde\n"
		if out != expected {
			t.Errorf("expected %q, got %q", expected, out)
		}
	})

	t.Run("swaps sides", func(t *testing.T) {
		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "merge", "-a", first, "-b", second, "--swap")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(out, "Bonjour\nHello\n") {
			t.Errorf("expected swapped output, got %q", out)
		}
	})

	t.Run("reads one side from stdin", func(t *testing.T) {
		runner := newTestRunner(&tu.MockTranslator{})
		runner.input = strings.NewReader("Salut\n")

		out, err := run(t, runner, "merge", "-a", first, "-b", "-", "-f", "csv")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "1,Hello,Salut") {
			t.Errorf("expected csv row, got %q", out)
		}
	})

	t.Run("writes markdown to a file", func(t *testing.T) {
		path := filepath.Join(dir, "out", "song.md")

		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "merge", "-a", first, "-b", second, "-f", "md", "-o", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != "" {
			t.Errorf("expected nothing on stdout, got %q", out)
		}

		content := tu.MustReadFile(t, path)
		if !strings.HasPrefix(content, "# song") {
			t.Errorf("expected title from filename, got %q", content)
		}
	})

	t.Run("rejects stdin for both sides", func(t *testing.T) {
		_, err := run(t, newTestRunner(&tu.MockTranslator{}), "merge", "-a", "-", "-b", "-")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		_, err := run(t, newTestRunner(&tu.MockTranslator{}), "merge", "-a", first, "-b", second, "-f", "pdf")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("fails when a side has no lyrics", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.txt")
		tu.MustWriteFile(t, empty, "[Intro]\n\n")

		_, err := run(t, newTestRunner(&tu.MockTranslator{}), "merge", "-a", first, "-b", empty)
		if !errors.Is(err, shared.ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
	})
}

func TestNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrics.txt")
	tu.MustWriteFile(t, path, "[Verse 1]\nHello\n\n\nWorld\n")

	t.Run("prints one line per entry", func(t *testing.T) {
		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "normalize", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != "Hello\nWorld\n" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("prints JSON", func(t *testing.T) {
		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "normalize", "--json", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != `["Hello","World"]`+"\n" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("requires a path", func(t *testing.T) {
		_, err := run(t, newTestRunner(&tu.MockTranslator{}), "normalize")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestTranslate(t *testing.T) {
	t.Run("prints the cleaned translation", func(t *testing.T) {
		tr := &tu.MockTranslator{Responses: map[string]string{"ja": "UniqueRef 1\nKonnichiwa\n"}}

		out, err := run(t, newTestRunner(tr), "translate", "--lang", "Japanese", "Hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != "Konnichiwa\n" {
			t.Errorf("unexpected output %q", out)
		}
		if tr.CallCount() != 1 || tr.Calls[0] != "ja" {
			t.Errorf("expected one call for ja, got %v", tr.Calls)
		}
	})

	t.Run("prints JSON with the request id", func(t *testing.T) {
		tr := &tu.MockTranslator{Responses: map[string]string{"hi": "Namaste"}}

		out, err := run(t, newTestRunner(tr), "translate", "-l", "hi", "--json", "Hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, `"targetLang":"hi"`) || !strings.Contains(out, `"translation":"Namaste"`) {
			t.Errorf("unexpected output %q", out)
		}
		if !strings.Contains(out, `"requestId":"`) {
			t.Errorf("expected request id, got %q", out)
		}
	})

	t.Run("reads the source from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "song.txt")
		tu.MustWriteFile(t, path, "Hello\nWorld\n")
		tr := &tu.MockTranslator{Responses: map[string]string{"ta": "Vanakkam"}}

		if _, err := run(t, newTestRunner(tr), "translate", "-l", "ta", "-f", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tr.CallCount() != 1 {
			t.Errorf("expected one call, got %d", tr.CallCount())
		}
	})

	t.Run("fails without a language", func(t *testing.T) {
		tr := &tu.MockTranslator{}

		_, err := run(t, newTestRunner(tr), "translate", "Hello")
		if !errors.Is(err, shared.ErrMissingSelection) {
			t.Errorf("expected ErrMissingSelection, got %v", err)
		}
		if tr.CallCount() != 0 {
			t.Error("translator should not be called")
		}
	})

	t.Run("fails offline", func(t *testing.T) {
		runner := newTestRunner(&tu.MockTranslator{})
		runner.connectivity = shared.Static(false)

		_, err := run(t, runner, "translate", "-l", "ja", "Hello")
		if !errors.Is(err, shared.ErrOffline) {
			t.Errorf("expected ErrOffline, got %v", err)
		}
	})

	t.Run("reports endpoint errors", func(t *testing.T) {
		tr := &tu.MockTranslator{Err: &shared.RemoteError{Message: "Translation failed."}}

		_, err := run(t, newTestRunner(tr), "translate", "-l", "ja", "Hello")
		if !errors.Is(err, shared.ErrRemote) {
			t.Errorf("expected ErrRemote, got %v", err)
		}
	})

	t.Run("times out", func(t *testing.T) {
		tr := &tu.MockTranslator{Fn: func(ctx context.Context, text, lang string) (string, error) {
			time.Sleep(time.Second)
			return "late", nil
		}}

		_, err := run(t, newTestRunner(tr), "translate", "-l", "ja", "--timeout", "20ms", "Hello")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})
}

func TestLanguages(t *testing.T) {
	t.Run("prints the registry", func(t *testing.T) {
		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "languages")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Target Languages") || !strings.Contains(out, "ja     Japanese") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("filters as JSON", func(t *testing.T) {
		out, err := run(t, newTestRunner(&tu.MockTranslator{}), "langs", "--filter", "chin", "--json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "zh-CN") || strings.Contains(out, "Japanese") {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestSetupConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := run(t, newTestRunner(&tu.MockTranslator{}), "setup", "config", "-c", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected path in output, got %q", out)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		t.Fatalf("expected written config to load, got %v", err)
	}
	if config.Translator.Endpoint == "" {
		t.Error("expected default endpoint in written config")
	}

	if _, err := run(t, newTestRunner(&tu.MockTranslator{}), "setup", "config", "-c", path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := loadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		tu.MustWriteFile(t, path, "LYRIX_TEST_VALUE=loaded\n")
		t.Setenv("LYRIX_TEST_VALUE", "")
		os.Unsetenv("LYRIX_TEST_VALUE")

		if err := loadEnv(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := os.Getenv("LYRIX_TEST_VALUE"); got != "loaded" {
			t.Errorf("expected loaded value, got %q", got)
		}
	})
}

func TestServeRequiresAPIKey(t *testing.T) {
	t.Setenv(shared.APIKeyEnv, "")
	runner := newTestRunner(&tu.MockTranslator{})

	_, err := run(t, runner, "serve", "--env", "")
	if !errors.Is(err, shared.ErrMissingConfig) {
		t.Errorf("expected ErrMissingConfig, got %v", err)
	}
}
