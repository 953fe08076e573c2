// Package proforma models real-estate investments.
//
// The core is a pure, synchronous engine turning PropertyAssumptions into
// ProFormaResults in three stages:
//   - Normalization: Normalize clamps every assumption into a usable range and
//     fills in defaults. It is idempotent.
//   - Projection: Project derives, for each year of the hold period, income,
//     expenses, NOI, debt service from the loan amortization, depreciation,
//     taxes and after-tax cashflow.
//   - Aggregation: Calculate rolls the years and the sale at the end of the
//     hold period into equity invested, cash returned, net profit, equity
//     multiple, cash on cash return and IRR.
//
// Financing and disposition are tagged variants (CashFinancing,
// LTVFinancing, DSCRFinancing and PriceDisposition, CapRateDisposition) so
// the engine never branches on loosely typed fields.
//
// Standalone calculators reuse the same primitives: loan amortization,
// DSCR analysis and loan sizing, NOI, cap rate, time value of money and
// IRR/NPV. DefaultCatalog lists them.
//
// The engine never fails. Invalid input is reported by the Validate
// functions as a list of messages, and degenerate computations return
// sentinel values (0, +Inf, a nil IRR).
//
// This package is the foundation of the `pf` command-line tool.
package proforma
