package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/accesskeeper/accesskeeper/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "search":
		runSearch(os.Args[2:])
	case "add":
		runAdd(os.Args[2:])
	case "remove", "rm":
		runRemove(os.Args[2:])
	case "list", "ls":
		runList(os.Args[2:])
	case "diff":
		runDiff(os.Args[2:])
	case "history":
		runHistory(os.Args[2:])
	case "rotate":
		runRotate(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// globalFlags registers the flags every command shares.
func globalFlags(fs *flag.FlagSet) *cmd.Options {
	opts := &cmd.Options{}
	fs.StringVar(&opts.WorkDir, "w", "", "Working directory (persisted to config)")
	fs.StringVar(&opts.WorkDir, "work-dir", "", "Working directory (persisted to config)")
	fs.StringVar(&opts.File, "f", "", "Explicit snapshot or plaintext seed file")
	fs.StringVar(&opts.File, "file", "", "Explicit snapshot or plaintext seed file")
	fs.StringVar(&opts.Extension, "e", "", "Snapshot file extension (default gpg)")
	fs.StringVar(&opts.Extension, "ext", "", "Snapshot file extension (default gpg)")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	return opts
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: accesskeeper search [flags] <pattern>")
		os.Exit(1)
	}
	cmd.Search(*opts, fs.Arg(0))
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: accesskeeper add [flags] <resource> <login> <password> [kind] [dd.mm.yyyy]")
		os.Exit(1)
	}
	cmd.Add(*opts, fs.Args())
}

func runRemove(args []string) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	opts := globalFlags(fs)
	force := fs.Bool("force", false, "Remove without confirmation")
	parse(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: accesskeeper remove [--force] <pattern>")
		os.Exit(1)
	}
	cmd.Remove(*opts, fs.Arg(0), *force)
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	cmd.List(*opts)
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	cmd.Diff(*opts)
}

func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	cmd.History(*opts)
}

func runRotate(args []string) {
	fs := flag.NewFlagSet("rotate", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	cmd.Rotate(*opts)
}

func runKeyring(args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	opts := globalFlags(fs)
	parse(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: accesskeeper keyring <save|forget|status>")
		os.Exit(1)
	}
	switch fs.Arg(0) {
	case "save":
		cmd.KeyringSave(*opts)
	case "forget":
		cmd.KeyringForget(*opts)
	case "status":
		cmd.KeyringStatus(*opts)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", fs.Arg(0))
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: accesskeeper completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("accesskeeper - Credentials in dated, encrypted snapshots")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  accesskeeper <command> [flags] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search      Search credentials by pattern")
	fmt.Println("  add         Add credentials and commit a new snapshot")
	fmt.Println("  remove, rm  Remove credentials matching a pattern")
	fmt.Println("  list, ls    Show all stored credentials")
	fmt.Println("  diff        Preview pending changes without committing")
	fmt.Println("  history     List committed snapshots (no passphrase)")
	fmt.Println("  rotate      Re-encrypt under a new passphrase")
	fmt.Println("  keyring     Manage the passphrase in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Flags (all commands):")
	fmt.Println("  -w, --work-dir  Working directory holding the snapshots")
	fmt.Println("  -f, --file      Explicit snapshot or plaintext seed file")
	fmt.Println("  -e, --ext       Snapshot file extension (default gpg)")
	fmt.Println("  --debug         Enable debug logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  accesskeeper search gmail                # Find gmail credentials")
	fmt.Println("  accesskeeper add site.com login pass     # Store a new credential")
	fmt.Println("  accesskeeper -f seed.txt diff            # Preview a seed file import")
	fmt.Println("  accesskeeper -f seed.txt list            # Import a seed file")
	fmt.Println()
	fmt.Println("Use 'accesskeeper help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "search":
		fmt.Println("accesskeeper search <pattern>")
		fmt.Println()
		fmt.Println("Decrypts the newest snapshot and prints the credentials whose")
		fmt.Println("display line matches the case-insensitive regular expression.")
		fmt.Println("The pattern must be at least 3 characters long.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  accesskeeper search gmail")
		fmt.Println("  accesskeeper search 'gmail|github'")
	case "add":
		fmt.Println("accesskeeper add <resource> <login> <password> [kind] [dd.mm.yyyy]")
		fmt.Println()
		fmt.Println("Adds a credential to the store and commits a new dated snapshot.")
		fmt.Println("Kind defaults to 'authentication', the date defaults to today.")
		fmt.Println("Fields must not contain whitespace. Adding an exact duplicate")
		fmt.Println("is a no-op and creates no snapshot.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  accesskeeper add site.com mylogin 12345678")
		fmt.Println("  accesskeeper add site.com mylogin 12345678 api-token 01.06.2026")
	case "remove", "rm":
		fmt.Println("accesskeeper remove [--force] <pattern>")
		fmt.Println()
		fmt.Println("Shows the credentials matching the pattern, asks for confirmation")
		fmt.Println("and removes them. The remaining records are committed into a new")
		fmt.Println("snapshot; the old snapshot stays on disk.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --force    Remove without confirmation")
	case "list", "ls":
		fmt.Println("accesskeeper list")
		fmt.Println()
		fmt.Println("Decrypts the newest snapshot and prints all credentials.")
		fmt.Println("With -f <seed file>, also imports the seed and commits it.")
	case "diff":
		fmt.Println("accesskeeper diff")
		fmt.Println()
		fmt.Println("Shows what the next commit would change as a unified diff,")
		fmt.Println("without writing anything. Useful with -f <seed file> before")
		fmt.Println("importing it for real.")
	case "history":
		fmt.Println("accesskeeper history")
		fmt.Println()
		fmt.Println("Lists the committed snapshots recorded in the journal, newest")
		fmt.Println("first. Does not require a passphrase.")
	case "rotate":
		fmt.Println("accesskeeper rotate")
		fmt.Println()
		fmt.Println("Decrypts the newest snapshot and re-encrypts its content into a")
		fmt.Println("new snapshot under a new passphrase. Records are unchanged.")
	case "keyring":
		fmt.Println("accesskeeper keyring <save|forget|status>")
		fmt.Println()
		fmt.Println("Caches the passphrase in the OS keyring so commands stop")
		fmt.Println("prompting. 'save' verifies the passphrase against the newest")
		fmt.Println("snapshot first. Set use_keyring=true in the config to enable")
		fmt.Println("lookups.")
	case "completion":
		fmt.Println("accesskeeper completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs a shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(accesskeeper completion bash)\"")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
