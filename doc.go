// Package cashflow turns recorded financial movements into balances,
// cash-flow statements and liquidity metrics.
//
// The engine is a set of pure functions over an in-memory snapshot:
//   - Installments: splitting a purchase into monthly parts that sum exactly
//     to the total (SplitInstallments, InstallmentTransactions).
//   - Recurrence: lazily expanding a template transaction into its series
//     (Expand).
//   - Credit cards: assigning purchases to monthly invoices from the card's
//     closing day (ResolveInvoice, GroupInvoices).
//   - Reconciliation: settling pending transactions, fully or partially, and
//     undoing settlements, one by one or in batches (Settle, Undo, SettleAll).
//   - Balances: realized and projected balances per account (Balances).
//   - Statements: period-bucketed cash flow with a running balance, by the
//     indirect or direct method (NewStatement).
//   - Liquidity: DSO, DPO and the cash conversion cycle (Liquidity).
//
// Only reconciled transactions are realized. Projections add pending ones.
//
// Book holds the snapshot and is persisted as JSONL by DecodeBook and
// EncodeBook. It is the only mutable type, through Apply.
//
// This package is the foundation of the `cfs` command-line tool.
package cashflow
