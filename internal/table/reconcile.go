package table

// Receive stores the props supplied by the caller after a load and reconciles
// the page index against the new total page count. Filters and widths are
// never touched, so text being typed survives any number of re-renders.
//
// It returns true when reconciliation issued a corrective fetch.
func (c *Controller) Receive(props Props) bool {
	props.TotalPageCount = max(props.TotalPageCount, 0)
	c.props = props
	return c.ObserveTotalPageCount(props.TotalPageCount)
}

// ObserveTotalPageCount reconciles the page index against total.
//
// When the current index is in range (or total is 0, meaning there is nothing
// to fetch) nothing happens, whether or not total changed. Otherwise the index
// is moved to the last page and exactly one corrective fetch is issued. A
// second observation of the same total therefore never fetches again.
func (c *Controller) ObserveTotalPageCount(total int) bool {
	total = max(total, 0)
	if !c.observed || total != c.totalPageCount {
		c.log.Debug().
			Int("previous", c.totalPageCount).
			Int("total_page_count", total).
			Bool("first", !c.observed).
			Msg("total page count changed")
	}
	c.observed = true
	c.totalPageCount = total

	index := c.Pagination().PageIndex
	if total == 0 || index < total {
		return false
	}

	c.store.SetPageIndex(total - 1)
	c.log.Debug().
		Int("from", index).
		Int("to", total-1).
		Msg("page index out of range, correcting")
	c.fetch("reconcile")
	return true
}
