package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/marksheet/core/grade"
)

func (cli *commandLine) initStore() error {
	users, err := cli.usrSvc.Query(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "store ready: %d user(s)\n", len(users))
	return nil
}

func (cli *commandLine) listUsers() error {
	users, err := cli.usrSvc.Query(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tFULL NAME")
	for _, usr := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", usr.Username, usr.Role, usr.FullName)
	}
	return w.Flush()
}

func (cli *commandLine) printResult(uname string) error {
	view, err := cli.dashSvc.Student(context.Background(), uname)
	if err != nil {
		return err
	}
	if view.Result == nil {
		fmt.Fprintf(cli.out, "no result for %q\n", uname)
		return nil
	}

	res := view.Result
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SUBJECT\tMARK")
	for _, s := range res.Subjects {
		fmt.Fprintf(w, "%s\t%.2f\n", s.Name, s.Mark)
	}
	fmt.Fprintf(w, "Total\t%.2f\n", res.Total)
	fmt.Fprintf(w, "Average\t%s\n", grade.Percent(res.Average))
	fmt.Fprintf(w, "Grade\t%s\n", res.Grade)
	fmt.Fprintf(w, "Attendance\t%s\n", grade.Percent(res.Attendance))
	return w.Flush()
}
