package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
)

// operatorID names the CLI in audit entries.
const operatorID = "worktimectl"

func NewSalaryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Payroll operations",
	}
	cmd.AddCommand(newSalaryCalcCommand(rootOpts))
	return cmd
}

func newSalaryCalcCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		req  payroll.CalculateSalaryRequest
		a, b string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate and store one employee's salary for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.A, err = optionalDecimal("a", a); err != nil {
				return err
			}
			if req.B, err = optionalDecimal("b", b); err != nil {
				return err
			}

			env, err := openEnvironment(rootOpts)
			if err != nil {
				return err
			}
			defer env.close()

			ctx := user.WithCaller(cmd.Context(), user.Caller{EmployeeID: operatorID, Role: user.RoleAdmin})
			result, err := env.services.Payroll.CalculateSalary(ctx, req)
			if err != nil {
				return err
			}
			return rootOpts.output(cmd.OutOrStdout(), result, func(w io.Writer) {
				printSalary(w, result)
			})
		},
	}

	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "employee id")
	cmd.Flags().IntVar(&req.Year, "year", 0, "year")
	cmd.Flags().IntVar(&req.Month, "month", 0, "month (1-12)")
	cmd.Flags().StringVar(&a, "a", "", "hourly rate, defaults to the last stored rate")
	cmd.Flags().StringVar(&b, "b", "", "overtime rate, defaults to the last stored rate")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func optionalDecimal(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return &d, nil
}

func printSalary(w io.Writer, s payroll.SalaryResponse) {
	fmt.Fprintf(w, "%s %04d-%02d\n", s.EmployeeID, s.Year, s.Month)
	fmt.Fprintf(w, "  total salary   %s\n", s.TotalSalary.StringFixed(2))
	fmt.Fprintf(w, "  total hours    %s\n", s.TotalHours.StringFixed(2))
	fmt.Fprintf(w, "  overtime hours %s\n", s.OvertimeHours.StringFixed(2))
	fmt.Fprintf(w, "  day-off days   %d\n", s.DayOffDays)
	fmt.Fprintf(w, "  total km       %s\n", s.TotalKm.String())
	fmt.Fprintf(w, "  rates          a=%s b=%s\n", s.A.String(), s.B.String())

	departments := make([]string, 0, len(s.HoursByDepartment))
	for d := range s.HoursByDepartment {
		departments = append(departments, d)
	}
	sort.Strings(departments)
	for _, d := range departments {
		fmt.Fprintf(w, "  hours in %-6s %s\n", d, s.HoursByDepartment[d].StringFixed(2))
	}
}
