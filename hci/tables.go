package hci

// Standard Bluetooth SIG opcodes covered by the built-in tables.
// Only the groups a host-side LE test and control surface needs are
// enumerated; anything else resolves through Registry.Register.
var (
	OpNop = NewOpcode(OGFNop, 0x000)

	// Link Control group.
	OpDisconnect        = NewOpcode(OGFLinkControl, 0x006)
	OpReadRemoteVerInfo = NewOpcode(OGFLinkControl, 0x01D)

	// Controller and Baseband group.
	OpSetEventMask          = NewOpcode(OGFController, 0x001)
	OpReset                 = NewOpcode(OGFController, 0x003)
	OpReadTxPowerLevel      = NewOpcode(OGFController, 0x02D)
	OpSetControllerToHostFC = NewOpcode(OGFController, 0x031)
	OpHostBufferSize        = NewOpcode(OGFController, 0x033)
	OpHostNumCmplPkts       = NewOpcode(OGFController, 0x035)
	OpSetEventMaskPage2     = NewOpcode(OGFController, 0x063)
	OpReadAuthPayloadTO     = NewOpcode(OGFController, 0x07B)
	OpWriteAuthPayloadTO    = NewOpcode(OGFController, 0x07C)
	OpConfigDataPath        = NewOpcode(OGFController, 0x083)

	// Informational group.
	OpReadLocalVerInfo          = NewOpcode(OGFInformational, 0x001)
	OpReadLocalSupCommands      = NewOpcode(OGFInformational, 0x002)
	OpReadLocalSupFeatures      = NewOpcode(OGFInformational, 0x003)
	OpReadBufSize               = NewOpcode(OGFInformational, 0x005)
	OpReadBDAddr                = NewOpcode(OGFInformational, 0x009)
	OpReadLocalSupCodecs        = NewOpcode(OGFInformational, 0x00D)
	OpReadLocalSupCodecCap      = NewOpcode(OGFInformational, 0x00E)
	OpReadLocalSupControllerDly = NewOpcode(OGFInformational, 0x00F)

	// Status group.
	OpReadRSSI = NewOpcode(OGFStatus, 0x005)

	// LE Controller group.
	OpLESetEventMask       = NewOpcode(OGFLEController, 0x001)
	OpLEReadBufSize        = NewOpcode(OGFLEController, 0x002)
	OpLEReadLocalSupFeat   = NewOpcode(OGFLEController, 0x003)
	OpLESetRandAddr        = NewOpcode(OGFLEController, 0x005)
	OpLESetAdvParam        = NewOpcode(OGFLEController, 0x006)
	OpLEReadAdvTxPower     = NewOpcode(OGFLEController, 0x007)
	OpLESetAdvData         = NewOpcode(OGFLEController, 0x008)
	OpLESetScanRespData    = NewOpcode(OGFLEController, 0x009)
	OpLESetAdvEnable       = NewOpcode(OGFLEController, 0x00A)
	OpLESetScanParam       = NewOpcode(OGFLEController, 0x00B)
	OpLESetScanEnable      = NewOpcode(OGFLEController, 0x00C)
	OpLECreateConn         = NewOpcode(OGFLEController, 0x00D)
	OpLECreateConnCancel   = NewOpcode(OGFLEController, 0x00E)
	OpLEReadWhiteListSize  = NewOpcode(OGFLEController, 0x00F)
	OpLEClearWhiteList     = NewOpcode(OGFLEController, 0x010)
	OpLEAddDevWhiteList    = NewOpcode(OGFLEController, 0x011)
	OpLERemoveDevWhiteList = NewOpcode(OGFLEController, 0x012)
	OpLEConnUpdate         = NewOpcode(OGFLEController, 0x013)
	OpLEReadChanMap        = NewOpcode(OGFLEController, 0x015)
	OpLEReadRemoteFeat     = NewOpcode(OGFLEController, 0x016)
	OpLEEncrypt            = NewOpcode(OGFLEController, 0x017)
	OpLERand               = NewOpcode(OGFLEController, 0x018)
	OpLEStartEncryption    = NewOpcode(OGFLEController, 0x019)
	OpLELTKReqReply        = NewOpcode(OGFLEController, 0x01A)
	OpLELTKReqNegReply     = NewOpcode(OGFLEController, 0x01B)
	OpLEReadSupStates      = NewOpcode(OGFLEController, 0x01C)
	OpLEReceiverTest       = NewOpcode(OGFLEController, 0x01D)
	OpLETransmitterTest    = NewOpcode(OGFLEController, 0x01E)
	OpLETestEnd            = NewOpcode(OGFLEController, 0x01F)
	OpLESetDataLen         = NewOpcode(OGFLEController, 0x022)
	OpLEReadDefDataLen     = NewOpcode(OGFLEController, 0x023)
	OpLEWriteDefDataLen    = NewOpcode(OGFLEController, 0x024)
	OpLEReadMaxDataLen     = NewOpcode(OGFLEController, 0x02F)
	OpLEReadPHY            = NewOpcode(OGFLEController, 0x030)
	OpLESetDefPHY          = NewOpcode(OGFLEController, 0x031)
	OpLESetPHY             = NewOpcode(OGFLEController, 0x032)
	OpLEReceiverTestV2     = NewOpcode(OGFLEController, 0x033)
	OpLETransmitterTestV2  = NewOpcode(OGFLEController, 0x034)
	OpLEReadTxPower        = NewOpcode(OGFLEController, 0x04B)
	OpLEReceiverTestV3     = NewOpcode(OGFLEController, 0x04F)
	OpLETransmitterTestV3  = NewOpcode(OGFLEController, 0x050)
)

// statusOnly is the return schema of the many commands that complete
// with nothing but a status octet.
var statusOnly = []Field{U8("Status")}

var standardCommands = []CommandDef{
	{Name: "NOP", Opcode: OpNop},

	{
		Name:   "DISCONNECT",
		Opcode: OpDisconnect,
		Params: []Field{U16("Connection_Handle"), Hex8("Reason")},
	},
	{
		Name:   "READ_REMOTE_VER_INFO",
		Opcode: OpReadRemoteVerInfo,
		Params: []Field{U16("Connection_Handle")},
	},

	{
		Name:    "SET_EVENT_MASK",
		Opcode:  OpSetEventMask,
		Params:  []Field{Hex64("Event_Mask")},
		Returns: statusOnly,
	},
	{
		Name:    "RESET",
		Opcode:  OpReset,
		Returns: statusOnly,
	},
	{
		Name:    "READ_TX_PWR_LVL",
		Opcode:  OpReadTxPowerLevel,
		Params:  []Field{U16("Connection_Handle"), U8("Type")},
		Returns: []Field{U8("Status"), U16("Connection_Handle"), S8("TX_Power_Level")},
	},
	{
		Name:    "SET_CONTROLLER_TO_HOST_FC",
		Opcode:  OpSetControllerToHostFC,
		Params:  []Field{U8("Flow_Control_Enable")},
		Returns: statusOnly,
	},
	{
		Name:   "HOST_BUFFER_SIZE",
		Opcode: OpHostBufferSize,
		Params: []Field{
			U16("Host_ACL_Data_Packet_Length"),
			U8("Host_Synchronous_Data_Packet_Length"),
			U16("Host_Total_Num_ACL_Data_Packets"),
			U16("Host_Total_Num_Synchronous_Data_Packets"),
		},
		Returns: statusOnly,
	},
	{
		Name:   "HOST_NUM_CMPL_PKTS",
		Opcode: OpHostNumCmplPkts,
		Params: []Field{
			U8("Num_Handles"),
			Rep("Num_Handles", U16("Connection_Handle"), U16("Host_Num_Completed_Packets")),
		},
	},
	{
		Name:    "SET_EVENT_MASK_PAGE2",
		Opcode:  OpSetEventMaskPage2,
		Params:  []Field{Hex64("Event_Mask_Page_2")},
		Returns: statusOnly,
	},
	{
		Name:    "READ_AUTH_PAYLOAD_TO",
		Opcode:  OpReadAuthPayloadTO,
		Params:  []Field{U16("Connection_Handle")},
		Returns: []Field{U8("Status"), U16("Connection_Handle"), U16("Authenticated_Payload_Timeout")},
	},
	{
		Name:    "WRITE_AUTH_PAYLOAD_TO",
		Opcode:  OpWriteAuthPayloadTO,
		Params:  []Field{U16("Connection_Handle"), U16("Authenticated_Payload_Timeout")},
		Returns: []Field{U8("Status"), U16("Connection_Handle")},
	},
	{
		Name:   "CONFIG_DATA_PATH",
		Opcode: OpConfigDataPath,
		Params: []Field{
			U8("Data_Path_Direction"),
			U8("Data_Path_ID"),
			U8("Vendor_Specific_Config_Length"),
			Var("Vendor_Specific_Config", "Vendor_Specific_Config_Length"),
		},
		Returns: statusOnly,
	},

	{
		Name:   "READ_LOCAL_VER_INFO",
		Opcode: OpReadLocalVerInfo,
		Returns: []Field{
			U8("Status"),
			U8("HCI_Version"),
			U16("HCI_Revision"),
			U8("LMP_Version"),
			U16("Manufacturer_Name"),
			U16("LMP_Subversion"),
		},
	},
	{
		Name:    "READ_LOCAL_SUP_CMDS",
		Opcode:  OpReadLocalSupCommands,
		Returns: []Field{U8("Status"), Raw("Supported_Commands", 64)},
	},
	{
		Name:    "READ_LOCAL_SUP_FEAT",
		Opcode:  OpReadLocalSupFeatures,
		Returns: []Field{U8("Status"), Hex64("LMP_Features")},
	},
	{
		Name:   "READ_BUF_SIZE",
		Opcode: OpReadBufSize,
		Returns: []Field{
			U8("Status"),
			U16("ACL_Data_Packet_Length"),
			U8("Synchronous_Data_Packet_Length"),
			U16("Total_Num_ACL_Data_Packets"),
			U16("Total_Num_Synchronous_Data_Packets"),
		},
	},
	{
		Name:    "READ_BD_ADDR",
		Opcode:  OpReadBDAddr,
		Returns: []Field{U8("Status"), Addr("BD_ADDR")},
	},
	{
		Name:   "READ_LOCAL_SUP_CODECS",
		Opcode: OpReadLocalSupCodecs,
		Returns: []Field{
			U8("Status"),
			U8("Num_Supported_Standard_Codecs"),
			Rep("Num_Supported_Standard_Codecs", U8("Standard_Codec_ID")),
			U8("Num_Supported_Vendor_Specific_Codecs"),
			Rep("Num_Supported_Vendor_Specific_Codecs", Hex32("Vendor_Specific_Codec_ID")),
		},
	},
	{
		Name:   "READ_LOCAL_SUP_CODEC_CAP",
		Opcode: OpReadLocalSupCodecCap,
		Params: []Field{
			Raw("Codec_ID", 5),
			U8("Logical_Transport_Type"),
			U8("Direction"),
		},
		Returns: []Field{
			U8("Status"),
			U8("Num_Codec_Capabilities"),
			Rep("Num_Codec_Capabilities",
				U8("Codec_Capability_Length"),
				Var("Codec_Capability", "Codec_Capability_Length"),
			),
		},
	},
	{
		Name:   "READ_LOCAL_SUP_CONTROLLER_DLY",
		Opcode: OpReadLocalSupControllerDly,
		Params: []Field{
			Raw("Codec_ID", 5),
			U8("Logical_Transport_Type"),
			U8("Direction"),
			U8("Codec_Configuration_Length"),
			Var("Codec_Configuration", "Codec_Configuration_Length"),
		},
		Returns: []Field{U8("Status"), U24("Min_Controller_Delay"), U24("Max_Controller_Delay")},
	},

	{
		Name:    "READ_RSSI",
		Opcode:  OpReadRSSI,
		Params:  []Field{U16("Handle")},
		Returns: []Field{U8("Status"), U16("Handle"), S8("RSSI")},
	},

	{
		Name:    "SET_EVENT_MASK",
		Opcode:  OpLESetEventMask,
		Params:  []Field{Hex64("LE_Event_Mask")},
		Returns: statusOnly,
	},
	{
		Name:   "READ_BUF_SIZE",
		Opcode: OpLEReadBufSize,
		Returns: []Field{
			U8("Status"),
			U16("LE_ACL_Data_Packet_Length"),
			U8("Total_Num_LE_ACL_Data_Packets"),
		},
	},
	{
		Name:    "READ_LOCAL_SUP_FEAT",
		Opcode:  OpLEReadLocalSupFeat,
		Returns: []Field{U8("Status"), Hex64("LE_Features")},
	},
	{
		Name:    "SET_RAND_ADDR",
		Opcode:  OpLESetRandAddr,
		Params:  []Field{Addr("Random_Address")},
		Returns: statusOnly,
	},
	{
		Name:   "SET_ADV_PARAM",
		Opcode: OpLESetAdvParam,
		Params: []Field{
			U16("Advertising_Interval_Min"),
			U16("Advertising_Interval_Max"),
			U8("Advertising_Type"),
			U8("Own_Address_Type"),
			U8("Peer_Address_Type"),
			Addr("Peer_Address"),
			U8("Advertising_Channel_Map"),
			U8("Advertising_Filter_Policy"),
		},
		Returns: statusOnly,
	},
	{
		Name:    "READ_ADV_TX_POWER",
		Opcode:  OpLEReadAdvTxPower,
		Returns: []Field{U8("Status"), S8("TX_Power_Level")},
	},
	{
		Name:    "SET_ADV_DATA",
		Opcode:  OpLESetAdvData,
		Params:  []Field{U8("Advertising_Data_Length"), Raw("Advertising_Data", 31)},
		Returns: statusOnly,
	},
	{
		Name:    "SET_SCAN_RESP_DATA",
		Opcode:  OpLESetScanRespData,
		Params:  []Field{U8("Scan_Response_Data_Length"), Raw("Scan_Response_Data", 31)},
		Returns: statusOnly,
	},
	{
		Name:    "SET_ADV_ENABLE",
		Opcode:  OpLESetAdvEnable,
		Params:  []Field{U8("Advertising_Enable")},
		Returns: statusOnly,
	},
	{
		Name:   "SET_SCAN_PARAM",
		Opcode: OpLESetScanParam,
		Params: []Field{
			U8("LE_Scan_Type"),
			U16("LE_Scan_Interval"),
			U16("LE_Scan_Window"),
			U8("Own_Address_Type"),
			U8("Scanning_Filter_Policy"),
		},
		Returns: statusOnly,
	},
	{
		Name:    "SET_SCAN_ENABLE",
		Opcode:  OpLESetScanEnable,
		Params:  []Field{U8("LE_Scan_Enable"), U8("Filter_Duplicates")},
		Returns: statusOnly,
	},
	{
		Name:   "CREATE_CONN",
		Opcode: OpLECreateConn,
		Params: []Field{
			U16("LE_Scan_Interval"),
			U16("LE_Scan_Window"),
			U8("Initiator_Filter_Policy"),
			U8("Peer_Address_Type"),
			Addr("Peer_Address"),
			U8("Own_Address_Type"),
			U16("Connection_Interval_Min"),
			U16("Connection_Interval_Max"),
			U16("Max_Latency"),
			U16("Supervision_Timeout"),
			U16("Min_CE_Length"),
			U16("Max_CE_Length"),
		},
	},
	{
		Name:    "CREATE_CONN_CANCEL",
		Opcode:  OpLECreateConnCancel,
		Returns: statusOnly,
	},
	{
		Name:    "READ_WHITE_LIST_SIZE",
		Opcode:  OpLEReadWhiteListSize,
		Returns: []Field{U8("Status"), U8("White_List_Size")},
	},
	{
		Name:    "CLEAR_WHITE_LIST",
		Opcode:  OpLEClearWhiteList,
		Returns: statusOnly,
	},
	{
		Name:    "ADD_DEV_WHITE_LIST",
		Opcode:  OpLEAddDevWhiteList,
		Params:  []Field{U8("Address_Type"), Addr("Address")},
		Returns: statusOnly,
	},
	{
		Name:    "REMOVE_DEV_WHITE_LIST",
		Opcode:  OpLERemoveDevWhiteList,
		Params:  []Field{U8("Address_Type"), Addr("Address")},
		Returns: statusOnly,
	},
	{
		Name:   "CONN_UPDATE",
		Opcode: OpLEConnUpdate,
		Params: []Field{
			U16("Connection_Handle"),
			U16("Connection_Interval_Min"),
			U16("Connection_Interval_Max"),
			U16("Max_Latency"),
			U16("Supervision_Timeout"),
			U16("Min_CE_Length"),
			U16("Max_CE_Length"),
		},
	},
	{
		Name:    "READ_CHAN_MAP",
		Opcode:  OpLEReadChanMap,
		Params:  []Field{U16("Connection_Handle")},
		Returns: []Field{U8("Status"), U16("Connection_Handle"), Raw("Channel_Map", 5)},
	},
	{
		Name:   "READ_REMOTE_FEAT",
		Opcode: OpLEReadRemoteFeat,
		Params: []Field{U16("Connection_Handle")},
	},
	{
		Name:    "ENCRYPT",
		Opcode:  OpLEEncrypt,
		Params:  []Field{Raw("Key", 16), Raw("Plaintext_Data", 16)},
		Returns: []Field{U8("Status"), Raw("Encrypted_Data", 16)},
	},
	{
		Name:    "RAND",
		Opcode:  OpLERand,
		Returns: []Field{U8("Status"), Hex64("Random_Number")},
	},
	{
		Name:   "START_ENCRYPTION",
		Opcode: OpLEStartEncryption,
		Params: []Field{
			U16("Connection_Handle"),
			Hex64("Random_Number"),
			U16("Encrypted_Diversifier"),
			Raw("Long_Term_Key", 16),
		},
	},
	{
		Name:    "LTK_REQ_REPL",
		Opcode:  OpLELTKReqReply,
		Params:  []Field{U16("Connection_Handle"), Raw("Long_Term_Key", 16)},
		Returns: []Field{U8("Status"), U16("Connection_Handle")},
	},
	{
		Name:    "LTK_REQ_NEG_REPL",
		Opcode:  OpLELTKReqNegReply,
		Params:  []Field{U16("Connection_Handle")},
		Returns: []Field{U8("Status"), U16("Connection_Handle")},
	},
	{
		Name:    "READ_SUP_STATES",
		Opcode:  OpLEReadSupStates,
		Returns: []Field{U8("Status"), Hex64("LE_States")},
	},
	{
		Name:    "RECEIVER_TEST",
		Opcode:  OpLEReceiverTest,
		Params:  []Field{U8("RX_Channel")},
		Returns: statusOnly,
	},
	{
		Name:    "TRANSMITTER_TEST",
		Opcode:  OpLETransmitterTest,
		Params:  []Field{U8("TX_Channel"), U8("Test_Data_Length"), U8("Packet_Payload")},
		Returns: statusOnly,
	},
	{
		Name:    "TEST_END",
		Opcode:  OpLETestEnd,
		Returns: []Field{U8("Status"), U16("Num_Packets")},
	},
	{
		Name:    "SET_DATA_LEN",
		Opcode:  OpLESetDataLen,
		Params:  []Field{U16("Connection_Handle"), U16("TX_Octets"), U16("TX_Time")},
		Returns: []Field{U8("Status"), U16("Connection_Handle")},
	},
	{
		Name:   "READ_DEF_DATA_LEN",
		Opcode: OpLEReadDefDataLen,
		Returns: []Field{
			U8("Status"),
			U16("Suggested_Max_TX_Octets"),
			U16("Suggested_Max_TX_Time"),
		},
	},
	{
		Name:    "WRITE_DEF_DATA_LEN",
		Opcode:  OpLEWriteDefDataLen,
		Params:  []Field{U16("Suggested_Max_TX_Octets"), U16("Suggested_Max_TX_Time")},
		Returns: statusOnly,
	},
	{
		Name:   "READ_MAX_DATA_LEN",
		Opcode: OpLEReadMaxDataLen,
		Returns: []Field{
			U8("Status"),
			U16("Supported_Max_TX_Octets"),
			U16("Supported_Max_TX_Time"),
			U16("Supported_Max_RX_Octets"),
			U16("Supported_Max_RX_Time"),
		},
	},
	{
		Name:    "READ_PHY",
		Opcode:  OpLEReadPHY,
		Params:  []Field{U16("Connection_Handle")},
		Returns: []Field{U8("Status"), U16("Connection_Handle"), U8("TX_PHY"), U8("RX_PHY")},
	},
	{
		Name:    "SET_DEF_PHY",
		Opcode:  OpLESetDefPHY,
		Params:  []Field{U8("All_PHYs"), U8("TX_PHYs"), U8("RX_PHYs")},
		Returns: statusOnly,
	},
	{
		Name:   "SET_PHY",
		Opcode: OpLESetPHY,
		Params: []Field{
			U16("Connection_Handle"),
			U8("All_PHYs"),
			U8("TX_PHYs"),
			U8("RX_PHYs"),
			U16("PHY_Options"),
		},
	},
	{
		Name:    "ENHANCED_RECEIVER_TEST",
		Opcode:  OpLEReceiverTestV2,
		Params:  []Field{U8("RX_Channel"), U8("PHY"), U8("Modulation_Index")},
		Returns: statusOnly,
	},
	{
		Name:   "ENHANCED_TRANSMITTER_TEST",
		Opcode: OpLETransmitterTestV2,
		Params: []Field{
			U8("TX_Channel"),
			U8("Test_Data_Length"),
			U8("Packet_Payload"),
			U8("PHY"),
		},
		Returns: statusOnly,
	},
	{
		Name:    "READ_TX_POWER",
		Opcode:  OpLEReadTxPower,
		Returns: []Field{U8("Status"), S8("Min_TX_Power"), S8("Max_TX_Power")},
	},
	{
		Name:   "RECEIVER_TEST_V3",
		Opcode: OpLEReceiverTestV3,
		Params: []Field{
			U8("RX_Channel"),
			U8("PHY"),
			U8("Modulation_Index"),
			U8("Expected_CTE_Length"),
			U8("Expected_CTE_Type"),
			U8("Slot_Durations"),
			U8("Switching_Pattern_Length"),
			Var("Antenna_IDs", "Switching_Pattern_Length"),
		},
		Returns: statusOnly,
	},
	{
		Name:   "TRANSMITTER_TEST_V3",
		Opcode: OpLETransmitterTestV3,
		Params: []Field{
			U8("TX_Channel"),
			U8("Test_Data_Length"),
			U8("Packet_Payload"),
			U8("PHY"),
			U8("CTE_Length"),
			U8("CTE_Type"),
			U8("Switching_Pattern_Length"),
			Var("Antenna_IDs", "Switching_Pattern_Length"),
		},
		Returns: statusOnly,
	},
}
