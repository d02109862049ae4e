package main

import (
	"context"
	"fmt"

	"github.com/trezcool/marksheet/core/records"
	"github.com/trezcool/marksheet/core/user"
)

func (cli *commandLine) addUser(uname, pwd string, role records.Role, name string) error {
	usr, err := cli.usrSvc.Create(context.Background(), user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     role,
		FullName: name,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created %s %q (%s)\n", usr.Role, usr.Username, usr.FullName)
	return nil
}

func (cli *commandLine) delUser(uname string) error {
	if err := cli.usrSvc.Delete(context.Background(), uname); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "deleted %q\n", uname)
	return nil
}
