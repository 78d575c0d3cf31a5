package engine

// CommandKind identifies a transport-level command.
type CommandKind string

const (
	CommandJoin        CommandKind = "join"
	CommandStart       CommandKind = "start"
	CommandRoll        CommandKind = "roll"
	CommandBuy         CommandKind = "buy"
	CommandSell        CommandKind = "sell"
	CommandTradeOffer  CommandKind = "trade-offer"
	CommandTradeAccept CommandKind = "trade-accept"
	CommandEnd         CommandKind = "end"
	CommandPlayers     CommandKind = "players"
)

// Command is a single player action delivered by the transport. RawArgs
// carries the command-specific payload already stripped of the command
// word itself (property names, trade clauses).
type Command struct {
	Kind      CommandKind
	ActorID   string
	ActorName string
	RawArgs   string
}

// ErrorKind classifies a command rejection. Rejections are ordinary
// results, never errors or panics; the session is left untouched.
type ErrorKind string

const (
	ErrorAlreadyStarted    ErrorKind = "AlreadyStarted"
	ErrorNotStarted        ErrorKind = "NotStarted"
	ErrorAlreadyEnded      ErrorKind = "AlreadyEnded"
	ErrorDuplicatePlayer   ErrorKind = "DuplicatePlayer"
	ErrorGameFull          ErrorKind = "GameFull"
	ErrorNotEnoughPlayers  ErrorKind = "NotEnoughPlayers"
	ErrorUnknownProperty   ErrorKind = "UnknownProperty"
	ErrorOutOfTurn         ErrorKind = "OutOfTurn"
	ErrorNotOwned          ErrorKind = "NotOwned"
	ErrorAlreadyOwned      ErrorKind = "AlreadyOwned"
	ErrorMortgaged         ErrorKind = "Mortgaged"
	ErrorInsufficientFunds ErrorKind = "InsufficientFunds"
	ErrorInvalidTradeShape ErrorKind = "InvalidTradeShape"
	ErrorNoPendingOffer    ErrorKind = "NoPendingOffer"
	ErrorNoPendingTrade    ErrorKind = "NoPendingTrade"
	ErrorOfferPending      ErrorKind = "OfferPending"
	ErrorBadArguments      ErrorKind = "BadArguments"
	ErrorUnknownCommand    ErrorKind = "UnknownCommand"
)

// Result is what the engine hands back to the transport for rendering,
// one message per reply line.
type Result struct {
	Success   bool      `json:"success"`
	Messages  []string  `json:"messages"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
}

func reject(kind ErrorKind, message string) Result {
	return Result{Success: false, Messages: []string{message}, ErrorKind: kind}
}

func ok(messages ...string) Result {
	return Result{Success: true, Messages: messages}
}
