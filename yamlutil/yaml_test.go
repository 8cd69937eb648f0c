package yamlutil

import (
	"flag"
	"testing"
)

func TestSetFlagsFromYaml(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	logLevel := fs.String("log-level", "INFO", "")
	noVerify := fs.Bool("no-verify", false, "")

	raw := []byte("LOG_LEVEL: DEBUG\nNO_VERIFY: \"true\"\n")
	if err := SetFlagsFromYaml(fs, raw); err != nil {
		t.Fatalf("SetFlagsFromYaml: %v", err)
	}

	if *logLevel != "DEBUG" {
		t.Errorf("log-level = %q, want DEBUG", *logLevel)
	}
	if !*noVerify {
		t.Errorf("no-verify = %v, want true", *noVerify)
	}
}

func TestSetFlagsFromYamlDoesNotOverrideExplicit(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	logLevel := fs.String("log-level", "INFO", "")
	if err := fs.Set("log-level", "ERROR"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw := []byte("LOG_LEVEL: DEBUG\n")
	if err := SetFlagsFromYaml(fs, raw); err != nil {
		t.Fatalf("SetFlagsFromYaml: %v", err)
	}

	if *logLevel != "ERROR" {
		t.Errorf("log-level = %q, want ERROR (explicitly set, not overridden)", *logLevel)
	}
}

func TestSetFlagsFromYamlUnknownKeyIgnored(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("log-level", "INFO", "")

	raw := []byte("SOME_OTHER_SETTING: whatever\n")
	if err := SetFlagsFromYaml(fs, raw); err != nil {
		t.Fatalf("SetFlagsFromYaml: %v", err)
	}
}
