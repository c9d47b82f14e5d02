package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

const (
	CarCompany = "company"
	CarPrivate = "private"
)

// Details holds the position-specific figures of a shift. It is stored as
// JSON next to the record.
type Details struct {
	// Driver
	CarType    *string          `json:"car_type,omitempty"`
	CarName    *string          `json:"car_name,omitempty"`
	CarNumber  *string          `json:"car_number,omitempty"`
	CheckInKm  *decimal.Decimal `json:"check_in_km,omitempty"`
	CheckOutKm *decimal.Decimal `json:"check_out_km,omitempty"`
	TotalKm    *decimal.Decimal `json:"total_km,omitempty"`

	// Till
	Bar              *decimal.Decimal `json:"bar,omitempty"`
	Gesamt           *decimal.Decimal `json:"gesamt,omitempty"`
	TrinkedEC        *decimal.Decimal `json:"trinked_ec,omitempty"`
	TrinkGeld        *decimal.Decimal `json:"trink_geld,omitempty"`
	AufRechnung      *decimal.Decimal `json:"auf_rechnung,omitempty"`
	KreditKarte      *decimal.Decimal `json:"kredit_karte,omitempty"`
	KassenSchniff    *decimal.Decimal `json:"kassen_schniff,omitempty"`
	GesamtLigerbude  *decimal.Decimal `json:"gesamt_ligerbude,omitempty"`
	GesamtLiegerando *decimal.Decimal `json:"gesamt_liegerando,omitempty"`
	Results          *decimal.Decimal `json:"results,omitempty"`
}

// LitoRule is the delivery-platform commission of one department.
// Commission applies only when the platform sum exceeds MinimumSum.
type LitoRule struct {
	LigerbudeRate  decimal.Decimal
	LiegerandoRate decimal.Decimal
	MinimumSum     decimal.Decimal
}

// CommissionRates are the till formulas' percentages as fractions.
type CommissionRates struct {
	ServiceDefault      decimal.Decimal
	ServiceByDepartment map[string]decimal.Decimal
	LitoDefault         LitoRule
	LitoByDepartment    map[string]LitoRule
}

// DefaultCommissionRates is used when no rate file is configured.
func DefaultCommissionRates() CommissionRates {
	half := decimal.RequireFromString("0.005")
	return CommissionRates{
		ServiceDefault: decimal.RequireFromString("0.01"),
		ServiceByDepartment: map[string]decimal.Decimal{
			"C2": decimal.RequireFromString("0.015"),
		},
		LitoDefault: LitoRule{LigerbudeRate: half, LiegerandoRate: half},
		LitoByDepartment: map[string]LitoRule{
			"C Ulm": {
				LigerbudeRate:  decimal.RequireFromString("0.007"),
				LiegerandoRate: decimal.RequireFromString("0.003"),
			},
			"C6": {LigerbudeRate: half, LiegerandoRate: half, MinimumSum: decimal.NewFromInt(1000)},
		},
	}
}

func (c CommissionRates) serviceRate(department string) decimal.Decimal {
	if r, ok := c.ServiceByDepartment[department]; ok {
		return r
	}
	return c.ServiceDefault
}

func (c CommissionRates) litoRule(department string) LitoRule {
	if r, ok := c.LitoByDepartment[department]; ok {
		return r
	}
	return c.LitoDefault
}

// LitoCommission is the platform commission for the two delivery totals.
func (c CommissionRates) LitoCommission(department string, ligerbude, liegerando decimal.Decimal) decimal.Decimal {
	rule := c.litoRule(department)
	if !ligerbude.Add(liegerando).GreaterThan(rule.MinimumSum) {
		return decimal.Zero
	}
	return ligerbude.Mul(rule.LigerbudeRate).Add(liegerando.Mul(rule.LiegerandoRate))
}

// ApplyDetails merges update into the record for its position and
// recomputes derived figures.
func ApplyDetails(r *Record, update Details, rates CommissionRates) error {
	switch r.Position {
	case employee.PositionDriver:
		return applyDriver(r, update)
	case employee.PositionService:
		return applyService(r, update, rates)
	case employee.PositionLito:
		return applyLito(r, update, rates)
	default:
		return ErrDetailsNotSupported
	}
}

func applyDriver(r *Record, u Details) error {
	d := &r.Details
	switch r.State() {
	case StateCheckedIn:
		var errs validator.ValidationErrors
		if u.CarType == nil || (*u.CarType != CarCompany && *u.CarType != CarPrivate) {
			errs.Add("car_type", "car_type must be company or private")
		}
		if (u.CarName == nil || *u.CarName == "") && (u.CarNumber == nil || *u.CarNumber == "") {
			errs.Add("car_name", "car_name or car_number is required")
		}
		if u.CheckInKm == nil || u.CheckInKm.IsNegative() {
			errs.Add("check_in_km", "check_in_km is required and must be non-negative")
		}
		if err := errs.Err(); err != nil {
			return err
		}
		d.CarType, d.CarName, d.CarNumber, d.CheckInKm = u.CarType, u.CarName, u.CarNumber, u.CheckInKm
		return nil
	case StateCheckedOut:
		if u.CheckOutKm == nil {
			var errs validator.ValidationErrors
			errs.Add("check_out_km", "check_out_km is required")
			return errs.Err()
		}
		in := decimal.Zero
		if d.CheckInKm != nil {
			in = *d.CheckInKm
		}
		if u.CheckOutKm.LessThan(in) {
			return ErrInvalidKilometers
		}
		total := u.CheckOutKm.Sub(in)
		d.CheckOutKm = u.CheckOutKm
		d.TotalKm = &total
		return nil
	default:
		return ErrDetailsBeforeCheckIn
	}
}

func applyService(r *Record, u Details, rates CommissionRates) error {
	if r.State() != StateCheckedOut {
		return ErrDetailsAfterCheckOut
	}
	var errs validator.ValidationErrors
	requireAmount(&errs, "bar", u.Bar)
	requireAmount(&errs, "gesamt", u.Gesamt)
	requireAmount(&errs, "trinked_ec", u.TrinkedEC)
	if u.TrinkGeld == nil && u.AufRechnung == nil {
		errs.Add("trink_geld", "trink_geld or auf_rechnung is required")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	deductions := orZero(u.TrinkGeld).Add(orZero(u.AufRechnung))
	results := u.Bar.
		Sub(*u.TrinkedEC).
		Sub(deductions).
		Add(u.Gesamt.Mul(rates.serviceRate(r.Department))).
		Round(2)

	d := &r.Details
	d.Bar, d.Gesamt, d.TrinkedEC, d.TrinkGeld, d.AufRechnung = u.Bar, u.Gesamt, u.TrinkedEC, u.TrinkGeld, u.AufRechnung
	d.Results = &results
	return nil
}

func applyLito(r *Record, u Details, rates CommissionRates) error {
	if r.State() != StateCheckedOut {
		return ErrDetailsAfterCheckOut
	}
	var errs validator.ValidationErrors
	requireAmount(&errs, "bar", u.Bar)
	requireAmount(&errs, "kredit_karte", u.KreditKarte)
	requireAmount(&errs, "kassen_schniff", u.KassenSchniff)
	requireAmount(&errs, "gesamt_ligerbude", u.GesamtLigerbude)
	requireAmount(&errs, "gesamt_liegerando", u.GesamtLiegerando)
	if err := errs.Err(); err != nil {
		return err
	}

	commission := rates.LitoCommission(r.Department, *u.GesamtLigerbude, *u.GesamtLiegerando)
	results := u.Bar.
		Add(*u.KassenSchniff).
		Sub(*u.KreditKarte).
		Sub(commission).
		Round(2)

	d := &r.Details
	d.Bar, d.KreditKarte, d.KassenSchniff = u.Bar, u.KreditKarte, u.KassenSchniff
	d.GesamtLigerbude, d.GesamtLiegerando = u.GesamtLigerbude, u.GesamtLiegerando
	d.Results = &results
	return nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func requireAmount(errs *validator.ValidationErrors, field string, v *decimal.Decimal) {
	if v == nil {
		errs.Add(field, field+" is required")
	}
}
