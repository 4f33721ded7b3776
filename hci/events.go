package hci

// Schemas for the self-describing async events. COMMAND_COMPLETE,
// COMMAND_STATUS and LE_META are handled structurally by the decoder
// and do not appear here.
var eventSchemas = map[EventCode][]Field{
	EvtDisconnectComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		Hex8("Reason"),
	},
	EvtEncryptionChange: {
		U8("Status"),
		U16("Connection_Handle"),
		U8("Encryption_Enabled"),
	},
	EvtReadRemoteVersionComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		U8("Version"),
		U16("Manufacturer_Name"),
		U16("Subversion"),
	},
	EvtHardwareError: {
		Hex8("Hardware_Code"),
	},
	EvtNumCompletedPackets: {
		U8("Num_Handles"),
		Rep("Num_Handles",
			U16("Connection_Handle"),
			U16("Num_Completed_Packets"),
		),
	},
	EvtDataBufferOverflow: {
		U8("Link_Type"),
	},
	EvtEncKeyRefreshComplete: {
		U8("Status"),
		U16("Connection_Handle"),
	},
	EvtAuthPayloadTimeoutExpired: {
		U16("Connection_Handle"),
	},
	EvtVendorSpec: {
		Tail("Params"),
	},
}

// Schemas for the LE Meta subevents, keyed by the subevent code that
// leads the event payload.
var subeventSchemas = map[SubeventCode][]Field{
	SubevtConnectionComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		U8("Role"),
		U8("Peer_Address_Type"),
		Addr("Peer_Address"),
		U16("Connection_Interval"),
		U16("Peripheral_Latency"),
		U16("Supervision_Timeout"),
		U8("Central_Clock_Accuracy"),
	},
	SubevtAdvertisingReport: {
		U8("Num_Reports"),
		Rep("Num_Reports",
			U8("Event_Type"),
			U8("Address_Type"),
			Addr("Address"),
			U8("Data_Length"),
			Var("Data", "Data_Length"),
			S8("RSSI"),
		),
	},
	SubevtConnectionUpdateComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		U16("Connection_Interval"),
		U16("Peripheral_Latency"),
		U16("Supervision_Timeout"),
	},
	SubevtReadRemoteFeaturesComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		Hex64("LE_Features"),
	},
	SubevtLongTermKeyRequest: {
		U16("Connection_Handle"),
		Hex64("Random_Number"),
		U16("Encrypted_Diversifier"),
	},
	SubevtRemoteConnParamRequest: {
		U16("Connection_Handle"),
		U16("Interval_Min"),
		U16("Interval_Max"),
		U16("Max_Latency"),
		U16("Timeout"),
	},
	SubevtDataLengthChange: {
		U16("Connection_Handle"),
		U16("Max_TX_Octets"),
		U16("Max_TX_Time"),
		U16("Max_RX_Octets"),
		U16("Max_RX_Time"),
	},
	SubevtEnhancedConnComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		U8("Role"),
		U8("Peer_Address_Type"),
		Addr("Peer_Address"),
		Addr("Local_Resolvable_Private_Address"),
		Addr("Peer_Resolvable_Private_Address"),
		U16("Connection_Interval"),
		U16("Peripheral_Latency"),
		U16("Supervision_Timeout"),
		U8("Central_Clock_Accuracy"),
	},
	SubevtDirectedAdvReport: {
		U8("Num_Reports"),
		Rep("Num_Reports",
			U8("Event_Type"),
			U8("Address_Type"),
			Addr("Address"),
			U8("Direct_Address_Type"),
			Addr("Direct_Address"),
			S8("RSSI"),
		),
	},
	SubevtPHYUpdateComplete: {
		U8("Status"),
		U16("Connection_Handle"),
		U8("TX_PHY"),
		U8("RX_PHY"),
	},
	SubevtExtendedAdvReport: {
		U8("Num_Reports"),
		Rep("Num_Reports",
			U16("Event_Type"),
			U8("Address_Type"),
			Addr("Address"),
			U8("Primary_PHY"),
			U8("Secondary_PHY"),
			U8("Advertising_SID"),
			S8("TX_Power"),
			S8("RSSI"),
			U16("Periodic_Advertising_Interval"),
			U8("Direct_Address_Type"),
			Addr("Direct_Address"),
			U8("Data_Length"),
			Var("Data", "Data_Length"),
		),
	},
}
