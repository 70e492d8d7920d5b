/*
Package domain contains the data model shared by the portfolio tool server.

It defines the enumerations accepted by the tools, the transaction variants
sent to the backend and the typed shapes of the backend responses that the
narrative renderers read. The package has no I/O and no dependencies beyond
the standard library.

# Key Entities

  - ResponseFormat, TaxStrategy, TransactionType: closed value sets used by tool inputs.
  - Transaction: a tagged variant (Deposit, Withdrawal, Swap) built from validated input.
  - HoldingsReport, HistoryReport, CashflowReport, TaxReport, ...: backend payloads.
  - ID: an identifier the backend may send as a number or a string.
*/
package domain
