package conversation

const (
	textSetupKeyPrompt = "🔑 Let's configure your BFMR API credentials.\n\n" +
		"Please enter your BFMR API Public Key:\n" +
		"(or use /cancel to cancel setup)"
	textSetupSecretPrompt = "Great! Now please enter your BFMR API Secret:\n" +
		"(or use /cancel to cancel setup)"
	textSetupSuccess = "✅ API credentials verified and saved successfully!\n\n" +
		"You can now use the following commands:\n" +
		"/deals - Browse deals one at a time\n" +
		"/profitable - View profitable deals only\n" +
		"/viewall - View all deals at once\n" +
		"/search [term] - Search for specific deals\n" +
		"/help - Show all commands"
	textSetupInvalid = "❌ Invalid API credentials: the BFMR API rejected the key or secret.\n" +
		"Please check your credentials and try /setup again."
	textSetupFailed = "❌ Failed to verify API credentials.\n" +
		"Error: %s\n\n" +
		"Please try /setup again with correct credentials."
	textSetupCancelled = "❌ Setup cancelled.\n" +
		"Use /setup to try again when you're ready."
	textCommitCancelled = "❌ Commitment cancelled."
	textNothingToCancel = "Nothing to cancel."

	textConfigureFirst = "⚠️ Please configure your API credentials first using /setup"

	textFetchingDeals      = "🔍 Fetching deals..."
	textFetchingAll        = "🔍 Fetching all deals..."
	textFetchingProfitable = "🔍 Fetching profitable deals..."
	textSearching          = "🔍 Searching for deals matching: <b>%s</b>..."
	textNoDeals            = "No deals available at the moment."
	textNoProfitable       = "No profitable deals available at the moment."
	textNoMatches          = "No deals found matching: <b>%s</b>"
	textFoundDeals         = "Found %d deals"
	textFoundProfitable    = "Found %d profitable deals"
	textFoundMatches       = "Found %d deals matching: <b>%s</b>"
	textMissingSearchTerm  = "Please provide a search term.\nExample: <code>/search nintendo</code>"
	textBrowseExpired      = "⌛ This deal list has expired. Use /deals to load it again."

	textQuantityPrompt  = "How many units would you like to commit to? (Enter a number)"
	textInvalidQuantity = "❌ Please enter a valid number greater than 0."
	textCommitSuccess   = "✅ Successfully committed to deal!\n" +
		"Quantity: %d\n" +
		"Please check your BFMR dashboard for next steps."
	textInvalidSelection = "❌ Error processing selection. Please try again later."

	textCredentialsInvalid = "❌ Invalid API credentials. Please use /setup to reconfigure."
	textAccessForbidden    = "❌ Access forbidden. Please check your API permissions."
	textAPIUnavailable     = "⚠️ BFMR API is temporarily unavailable. Please try again in a few minutes."
	textFetchFailed        = "❌ An error occurred while fetching deals."

	textDealNotAvailable    = "❌ This deal is no longer available."
	textReservationsClosed  = "❌ This deal is currently closed for reservations."
	textAlreadyReserved     = "❌ You have already reserved this deal."
	textReservationLimit    = "❌ Reservation limit exceeded for this deal."
	textOutOfStock          = "❌ Unable to reserve the requested quantity. No units available."
	textReservationRejected = "❌ Unable to commit to deal: %s"
	textCommitFailed        = "❌ Error processing commitment. Please try again later."

	// TextInternalError отправляет транспорт, если обработчик вернул ошибку.
	TextInternalError = "❌ An error occurred while processing your request.\n" +
		"Please try again later or contact support if the issue persists."
)
