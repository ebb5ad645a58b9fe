// Package product models catalog items as seen by the order lifecycle: a price
// to snapshot into order lines and a stock counter to decrement when an order is
// placed. Names, descriptions and categories carry English and Arabic text; the
// English text is the canonical sort key.
package product
