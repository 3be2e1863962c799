package shell

import (
	"bufio"
	"fmt"
	"io"
	"os/user"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/RinpoStk/fmod/internal/directory"
)

// Commands is the command surface Run/dispatch need; *session.Session
// satisfies it. Defined as an interface here (rather than taking
// *session.Session directly) so shell-dispatch tests can exercise arity
// checking and output formatting against a generated mock instead of a
// real image, per SPEC_FULL.md §2's golang/mock commitment.
type Commands interface {
	Pwd() string
	Fsinfo() string
	Open(name, mode string) error
	Close(name string) error
	Create(name string) error
	Read(name string, startPos, numBytes uint32) ([]byte, error)
	Write(name string, startPos uint32, data []byte) error
	Rm(name string, safe bool) error
	Cd(name string) error
	Ls(dirName string) ([]*directory.Entry, error)
	Mkdir(name string) error
	Rmdir(name string) error
	Size(name string) (uint32, error)
}

// helpText is the shell's command summary (SPEC_FULL.md §7's
// supplemented help command); it costs nothing against the core budget
// since it never touches the engine.
const helpText = `Commands:
  pwd                   print the current directory
  fsinfo                print filesystem info
  open F M               open F in mode M (r/w/rw)
  close F                 close F
  create F                create empty file F
  read F S N              print N bytes of F from offset S
  write F S "D D ..."      write D to F at offset S
  rm F                    remove file F
  srm F                   securely remove file F
  cd D                    change directory to D
  ls [D]                  list current or named directory
  mkdir D                 create directory D
  rmdir D                 remove empty directory D
  size F                  print size of F in bytes
  help                    show this text
  exit                    quit
`

// Prompt renders "USER[/a/b/]> ", per spec.md §6.
func Prompt(s Commands) string {
	name := "user"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	return fmt.Sprintf("%s[%s]> ", name, s.Pwd())
}

// Run drives the interactive shell: read a line, tokenize it, dispatch it
// against s, print the result or a single diagnostic line, and loop
// until "exit" or EOF. Every path returns to the prompt; nothing is
// retried, per spec.md §7.
func Run(s Commands, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	log := logrus.WithField("component", "shell")

	for {
		fmt.Fprint(out, Prompt(s))
		if !scanner.Scan() {
			return
		}
		tokens := Tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		verb, args := tokens[0], tokens[1:]
		if verb == "exit" {
			return
		}

		output, err := dispatch(s, verb, args)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err.Error())
			log.WithError(err).Debug("command failed")
			continue
		}
		if output != "" {
			fmt.Fprint(out, output)
		}
	}
}

// dispatch binds one tokenized command line to the session's command
// surface, enforcing arity and parsing numeric arguments (spec.md §6).
func dispatch(s Commands, verb string, args []string) (string, error) {
	switch verb {
	case "pwd":
		if len(args) != 0 {
			return "", usage("pwd")
		}
		return s.Pwd() + "\n", nil

	case "help":
		return helpText, nil

	case "fsinfo":
		if len(args) != 0 {
			return "", usage("fsinfo")
		}
		return s.Fsinfo(), nil

	case "open":
		if len(args) != 2 {
			return "", usage("open F M")
		}
		return "", s.Open(args[0], args[1])

	case "close":
		if len(args) != 1 {
			return "", usage("close F")
		}
		return "", s.Close(args[0])

	case "create":
		if len(args) != 1 {
			return "", usage("create F")
		}
		return "", s.Create(args[0])

	case "read":
		if len(args) != 3 {
			return "", usage("read F S N")
		}
		start, err := parseUint32(args[1])
		if err != nil {
			return "", err
		}
		num, err := parseUint32(args[2])
		if err != nil {
			return "", err
		}
		data, err := s.Read(args[0], start, num)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "write":
		if len(args) < 3 {
			return "", usage(`write F S "D D ..."`)
		}
		start, err := parseUint32(args[1])
		if err != nil {
			return "", err
		}
		return "", s.Write(args[0], start, []byte(args[2]))

	case "rm":
		if len(args) != 1 {
			return "", usage("rm F")
		}
		return "", s.Rm(args[0], false)

	case "srm":
		if len(args) != 1 {
			return "", usage("srm F")
		}
		return "", s.Rm(args[0], true)

	case "cd":
		if len(args) != 1 {
			return "", usage("cd D")
		}
		return "", s.Cd(args[0])

	case "ls":
		if len(args) > 1 {
			return "", usage("ls [D]")
		}
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}
		entries, err := s.Ls(dir)
		if err != nil {
			return "", err
		}
		var out string
		for _, e := range entries {
			out += e.Name + "\n"
		}
		return out, nil

	case "mkdir":
		if len(args) != 1 {
			return "", usage("mkdir D")
		}
		return "", s.Mkdir(args[0])

	case "rmdir":
		if len(args) != 1 {
			return "", usage("rmdir D")
		}
		return "", s.Rmdir(args[0])

	case "size":
		if len(args) != 1 {
			return "", usage("size F")
		}
		n, err := s.Size(args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d bytes.\n", n), nil

	default:
		return "", fmt.Errorf("Invalid command, please try again.")
	}
}

func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid decimal number: %w", s, err)
	}
	return uint32(n), nil
}
