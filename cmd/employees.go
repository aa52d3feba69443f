package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fanbe-group/leads-cli/internal/model"
)

var (
	employeeName  string
	employeeEmail string
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage the employee directory used for lead assignment",
}

var employeesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		email := strings.ToLower(strings.TrimSpace(employeeEmail))
		existing, err := st.GetEmployeeByEmail(ctx, email)
		if err != nil {
			return eris.Wrap(err, "check existing employee")
		}
		if existing != nil {
			return eris.Errorf("employee with email %s already exists", email)
		}

		emp, err := st.InsertEmployee(ctx, model.Employee{
			Name:  strings.TrimSpace(employeeName),
			Email: email,
		})
		if err != nil {
			return eris.Wrap(err, "add employee")
		}

		zap.L().Info("employee added",
			zap.String("id", emp.ID),
			zap.String("email", emp.Email),
		)
		return nil
	},
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		emps, err := st.ListEmployees(ctx)
		if err != nil {
			return eris.Wrap(err, "list employees")
		}

		for _, emp := range emps {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", emp.ID, emp.Name, emp.Email)
		}
		return nil
	},
}

func init() {
	employeesAddCmd.Flags().StringVar(&employeeName, "name", "", "employee name (required)")
	employeesAddCmd.Flags().StringVar(&employeeEmail, "email", "", "employee email (required)")
	_ = employeesAddCmd.MarkFlagRequired("name")
	_ = employeesAddCmd.MarkFlagRequired("email")

	employeesCmd.AddCommand(employeesAddCmd)
	employeesCmd.AddCommand(employeesListCmd)
	rootCmd.AddCommand(employeesCmd)
}
