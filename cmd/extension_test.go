package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvAssumptionsFile, EnvAssumptionsFile, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "pf-hello")

	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write pf-hello source: %v", err)
	}

	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile pf-hello: %v", err)
	}
	log.Printf("Compiled pf-hello to %s", helloCmdPath)

	pfBinaryPath := filepath.Join(tempDir, "pf")
	cmd = exec.Command("go", "build", "-o", pfBinaryPath, "../pf")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile pf binary: %v", err)
	}

	expectedAssumptionsFile := filepath.Join(tempDir, "random_deal.yaml")
	expectedCurrency := "EUR"
	expectedVerbose := true

	args := []string{
		"--assumptions-file", expectedAssumptionsFile,
		"--currency", expectedCurrency,
		"-v",
		"hello", // The extension subcommand
		"world",
	}

	pfCmd := exec.Command(pfBinaryPath, args...)
	pfCmd.Dir = tempDir
	oldPath := os.Getenv("PATH")
	pfCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + oldPath}

	var stdout, stderr bytes.Buffer
	pfCmd.Stdout = &stdout
	pfCmd.Stderr = &stderr

	if err := pfCmd.Run(); err != nil {
		t.Fatalf("pf command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()

	expectedLines := []string{
		EnvAssumptionsFile + "=" + expectedAssumptionsFile,
		EnvCurrency + "=" + expectedCurrency,
		EnvVerbose + "=" + strconv.FormatBool(expectedVerbose),
		"args=[world]",
	}
	for _, expectedLine := range expectedLines {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}

	if stderr.Len() > 0 {
		t.Logf("Stderr from pf command: %s", stderr.String())
	}
}

func TestSetFlagsFromEnv(t *testing.T) {
	oldFile, oldCur := *assumptionsFile, *defaultCurrency
	t.Cleanup(func() { *assumptionsFile, *defaultCurrency = oldFile, oldCur })

	t.Setenv(EnvAssumptionsFile, "main-street.yaml")
	t.Setenv(EnvCurrency, "EUR")
	t.Setenv(EnvVerbose, "")
	SetFlagsFromEnv()

	if *assumptionsFile != "main-street.yaml" {
		t.Errorf("assumptions file = %q, want %q", *assumptionsFile, "main-street.yaml")
	}
	if *defaultCurrency != "EUR" {
		t.Errorf("currency = %q, want %q", *defaultCurrency, "EUR")
	}
}
