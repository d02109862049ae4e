package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/marksheet/core/dashboard"
	"github.com/trezcool/marksheet/core/records"
	"github.com/trezcool/marksheet/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc  *user.Service
	dashSvc *dashboard.Service
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  init                                              - create and seed the store if needed")
	fmt.Fprintln(cli.out, "  adduser -username U -role teacher|student [-name N] - create a user, the password is prompted")
	fmt.Fprintln(cli.out, "  deluser -username U                               - delete a user (and a student's result)")
	fmt.Fprintln(cli.out, "  users                                             - list all users")
	fmt.Fprintln(cli.out, "  result -username U                                - print a student's result")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := cli.newFlagSet("adduser")
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", "", "The user's role: teacher or student.")
	addUserName := addUserCmd.String("name", "", "The user's full name. Defaults to the username.")

	delUserCmd := cli.newFlagSet("deluser")
	delUserUname := delUserCmd.String("username", "", "The username of the user to delete.")

	resultCmd := cli.newFlagSet("result")
	resultUname := resultCmd.String("username", "", "The student's username.")

	switch args[1] {
	case "init":
		return cli.initStore()
	case "users":
		return cli.listUsers()
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserRole == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, string(pwd), records.Role(*addUserRole), *addUserName)
	case "deluser":
		if err := delUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *delUserUname == "" {
			delUserCmd.Usage()
			return errHelp
		}
		return cli.delUser(*delUserUname)
	case "result":
		if err := resultCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resultUname == "" {
			resultCmd.Usage()
			return errHelp
		}
		return cli.printResult(*resultUname)
	default:
		cli.printUsage()
		return errHelp
	}
}
