package interopnames

// Names of interops used by client-side scripts.
const (
	SystemContractCall             = "System.Contract.Call"
	SystemRuntimeCheckWitness      = "System.Runtime.CheckWitness"
	SystemRuntimeGetTime           = "System.Runtime.GetTime"
	SystemRuntimeLog               = "System.Runtime.Log"
	SystemRuntimeNotify            = "System.Runtime.Notify"
	NeoCryptoECDsaVerify           = "Neo.Crypto.ECDsaVerify"
	NeoCryptoECDsaCheckMultiSig    = "Neo.Crypto.ECDsaCheckMultiSig"
	NeoNativeTokensGAS             = "Neo.Native.Tokens.GAS"
	NeoNativeTokensNEO             = "Neo.Native.Tokens.NEO"
	NeoNativePolicy                = "Neo.Native.Policy"
	NeoNativeDeploy                = "Neo.Native.Deploy"
	SystemBlockchainGetHeight      = "System.Blockchain.GetHeight"
	SystemBlockchainGetBlock       = "System.Blockchain.GetBlock"
	SystemBlockchainGetTransaction = "System.Blockchain.GetTransaction"
)

var names = []string{
	SystemContractCall,
	SystemRuntimeCheckWitness,
	SystemRuntimeGetTime,
	SystemRuntimeLog,
	SystemRuntimeNotify,
	NeoCryptoECDsaVerify,
	NeoCryptoECDsaCheckMultiSig,
	NeoNativeTokensGAS,
	NeoNativeTokensNEO,
	NeoNativePolicy,
	NeoNativeDeploy,
	SystemBlockchainGetHeight,
	SystemBlockchainGetBlock,
	SystemBlockchainGetTransaction,
}
