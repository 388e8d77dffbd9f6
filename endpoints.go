package relay

// Relayer endpoint paths, relative to the client's base URL.
const (
	EndpointNonce        = "/nonce"
	EndpointRelayPayload = "/relay-payload"
	EndpointTransaction  = "/transaction"
	EndpointTransactions = "/transactions"
	EndpointSubmit       = "/submit"
	EndpointDeployed     = "/deployed"
)
