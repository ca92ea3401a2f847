package game

type Director interface {
	/**
	 * Initialize the director for a round
	 */
	Init(View)

	/**
	 * Decide on the next actions for the given view, sending them on the
	 * channel. The channel must be closed once no more actions follow.
	 */
	Act(View, chan<- CellAction)

	/**
	 * Stop acting
	 */
	End()
}
