package hci

// Vendor-specific opcodes for the controller's extended test and
// diagnostics surface.
var (
	OpVSSetSnifferEnable = NewOpcode(OGFVendorSpec, 0x3CD)

	OpVSSetAuxDelay         = NewOpcode(OGFVendorSpec, 0x3D0)
	OpVSSetExtAdvFragLen    = NewOpcode(OGFVendorSpec, 0x3D1)
	OpVSSetExtAdvPHYOpts    = NewOpcode(OGFVendorSpec, 0x3D2)
	OpVSSetExtAdvDefPHYOpts = NewOpcode(OGFVendorSpec, 0x3D3)
	OpVSGenerateISO         = NewOpcode(OGFVendorSpec, 0x3D5)
	OpVSGetISOTestReport    = NewOpcode(OGFVendorSpec, 0x3D6)
	OpVSEnaISOSink          = NewOpcode(OGFVendorSpec, 0x3D7)
	OpVSEnaAutoGenISO       = NewOpcode(OGFVendorSpec, 0x3D8)
	OpVSGetCISStats         = NewOpcode(OGFVendorSpec, 0x3D9)
	OpVSGetAuxAdvStats      = NewOpcode(OGFVendorSpec, 0x3DA)
	OpVSGetAuxScanStats     = NewOpcode(OGFVendorSpec, 0x3DB)
	OpVSGetPerScanStats     = NewOpcode(OGFVendorSpec, 0x3DC)
	OpVSSetConnPHYTxPower   = NewOpcode(OGFVendorSpec, 0x3DD)
	OpVSGetPerChanMap       = NewOpcode(OGFVendorSpec, 0x3DE)

	OpVSSetScanChMap       = NewOpcode(OGFVendorSpec, 0x3E0)
	OpVSSetEventMask       = NewOpcode(OGFVendorSpec, 0x3E1)
	OpVSEnaACLSink         = NewOpcode(OGFVendorSpec, 0x3E3)
	OpVSGenerateACL        = NewOpcode(OGFVendorSpec, 0x3E4)
	OpVSEnaAutoGenACL      = NewOpcode(OGFVendorSpec, 0x3E5)
	OpVSSetTxTestErrPatt   = NewOpcode(OGFVendorSpec, 0x3E6)
	OpVSSetConnOpFlags     = NewOpcode(OGFVendorSpec, 0x3E7)
	OpVSSetP256PrivKey     = NewOpcode(OGFVendorSpec, 0x3E8)
	OpVSGetACLTestReport   = NewOpcode(OGFVendorSpec, 0x3E9)
	OpVSSetLocalMinUsedCh  = NewOpcode(OGFVendorSpec, 0x3EA)
	OpVSGetPeerMinUsedCh   = NewOpcode(OGFVendorSpec, 0x3EB)
	OpVSValidatePubKeyMode = NewOpcode(OGFVendorSpec, 0x3EC)

	OpVSRegWrite       = NewOpcode(OGFVendorSpec, 0x300)
	OpVSRegRead        = NewOpcode(OGFVendorSpec, 0x301)
	OpVSResetConnStats = NewOpcode(OGFVendorSpec, 0x302)
	OpVSTxTest         = NewOpcode(OGFVendorSpec, 0x303)
	OpVSResetTestStats = NewOpcode(OGFVendorSpec, 0x304)
	OpVSRxTest         = NewOpcode(OGFVendorSpec, 0x305)
	OpVSGetRSSI        = NewOpcode(OGFVendorSpec, 0x306)
	OpVSBBEnable       = NewOpcode(OGFVendorSpec, 0x307)
	OpVSBBDisable      = NewOpcode(OGFVendorSpec, 0x308)

	OpVSSetBDAddr       = NewOpcode(OGFVendorSpec, 0x3F0)
	OpVSGetRandAddr     = NewOpcode(OGFVendorSpec, 0x3F1)
	OpVSSetLocalFeat    = NewOpcode(OGFVendorSpec, 0x3F2)
	OpVSSetOpFlags      = NewOpcode(OGFVendorSpec, 0x3F3)
	OpVSGetPDUFiltStats = NewOpcode(OGFVendorSpec, 0x3F4)
	OpVSSetAdvTxPower   = NewOpcode(OGFVendorSpec, 0x3F5)
	OpVSSetConnTxPower  = NewOpcode(OGFVendorSpec, 0x3F6)
	OpVSSetEncMode      = NewOpcode(OGFVendorSpec, 0x3F7)
	OpVSSetChanMap      = NewOpcode(OGFVendorSpec, 0x3F8)
	OpVSSetDiagMode     = NewOpcode(OGFVendorSpec, 0x3F9)
	OpVSGetSysStats     = NewOpcode(OGFVendorSpec, 0x3FA)
	OpVSGetAdvStats     = NewOpcode(OGFVendorSpec, 0x3FB)
	OpVSGetScanStats    = NewOpcode(OGFVendorSpec, 0x3FC)
	OpVSGetConnStats    = NewOpcode(OGFVendorSpec, 0x3FD)
	OpVSGetTestStats    = NewOpcode(OGFVendorSpec, 0x3FE)
	OpVSGetPoolStats    = NewOpcode(OGFVendorSpec, 0x3FF)
)

// Shared return schemas. The accumulated data path counters come back
// in the same shape for connections, direct test mode and CIS.
var dataStatsReturns = []Field{
	U8("Status"),
	U32("RX_Data"),
	U32("RX_Data_CRC"),
	U32("RX_Data_Timeout"),
	U32("TX_Data"),
	U32("Err_Data"),
	U16("RX_Setup"),
	U16("TX_Setup"),
	U16("RX_ISR"),
	U16("TX_ISR"),
}

var testReportReturns = []Field{
	U8("Status"),
	U32("RX_Packet_Count"),
	U32("RX_Octet_Count"),
	U32("Generated_Packet_Count"),
	U32("Generated_Octet_Count"),
}

var scanStatsCommon = []Field{
	U8("Status"),
	U32("RX_Adv"),
	U32("RX_Adv_CRC"),
	U32("RX_Adv_Timeout"),
	U32("TX_Req"),
	U32("RX_Rsp"),
	U32("RX_Rsp_CRC"),
	U32("RX_Rsp_Timeout"),
	U32("Err_Scan"),
	U16("RX_Setup"),
	U16("TX_Setup"),
	U16("RX_ISR"),
	U16("TX_ISR"),
}

var vendorCommands = []CommandDef{
	{
		Name:    "SET_SNIFFER_ENABLE",
		Opcode:  OpVSSetSnifferEnable,
		Params:  []Field{U8("Output_Method"), U8("Enable")},
		Returns: statusOnly,
	},

	{
		Name:    "SET_AUX_DELAY",
		Opcode:  OpVSSetAuxDelay,
		Params:  []Field{U32("Delay"), U8("Advertising_Handle")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_EXT_ADV_FRAG_LEN",
		Opcode:  OpVSSetExtAdvFragLen,
		Params:  []Field{U8("Advertising_Handle"), U8("Frag_Length")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_EXT_ADV_PHY_OPTS",
		Opcode:  OpVSSetExtAdvPHYOpts,
		Params:  []Field{U8("Advertising_Handle"), U8("Primary_Opts"), U8("Secondary_Opts")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_EXT_ADV_DEF_PHY_OPTS",
		Opcode:  OpVSSetExtAdvDefPHYOpts,
		Params:  []Field{U8("PHY_Opts")},
		Returns: statusOnly,
	},
	{
		Name:    "GENERATE_ISO",
		Opcode:  OpVSGenerateISO,
		Params:  []Field{U16("Connection_Handle"), U16("Packet_Length"), U8("Num_Packets")},
		Returns: statusOnly,
	},
	{
		Name:    "GET_ISO_TEST_REPORT",
		Opcode:  OpVSGetISOTestReport,
		Returns: testReportReturns,
	},
	{
		Name:    "ENA_ISO_SINK",
		Opcode:  OpVSEnaISOSink,
		Params:  []Field{U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:    "ENA_AUTO_GEN_ISO",
		Opcode:  OpVSEnaAutoGenISO,
		Params:  []Field{U32("Packet_Length")},
		Returns: statusOnly,
	},
	{
		Name:    "GET_CIS_STATS",
		Opcode:  OpVSGetCISStats,
		Returns: dataStatsReturns,
	},
	{
		Name:   "GET_AUX_ADV_STATS",
		Opcode: OpVSGetAuxAdvStats,
		Returns: []Field{
			U8("Status"),
			U32("TX_Adv"),
			U32("RX_Req"),
			U32("RX_Req_CRC"),
			U16("RX_Req_Timeout"),
			U32("TX_Resp"),
			U32("TX_Chain"),
			U32("Err_Adv"),
			U16("RX_Setup"),
			U16("TX_Setup"),
			U16("RX_ISR"),
			U16("TX_ISR"),
		},
	},
	{
		Name:   "GET_AUX_SCAN_STATS",
		Opcode: OpVSGetAuxScanStats,
		Returns: []Field{
			U8("Status"),
			U32("RX_Adv"),
			U32("RX_Adv_CRC"),
			U32("RX_Adv_Timeout"),
			U32("TX_Req"),
			U32("RX_Rsp"),
			U32("RX_Rsp_CRC"),
			U32("RX_Rsp_Timeout"),
			U32("RX_Chain"),
			U32("RX_Chain_CRC"),
			U32("RX_Chain_Timeout"),
			U32("Err_Scan"),
			U16("RX_Setup"),
			U16("TX_Setup"),
			U16("RX_ISR"),
			U16("TX_ISR"),
		},
	},
	{
		Name:    "GET_PER_SCAN_STATS",
		Opcode:  OpVSGetPerScanStats,
		Returns: scanStatsCommon,
	},
	{
		Name:    "SET_CONN_PHY_TX_PWR",
		Opcode:  OpVSSetConnPHYTxPower,
		Params:  []Field{U16("Connection_Handle"), S8("TX_Power"), U8("PHY")},
		Returns: statusOnly,
	},
	{
		Name:    "GET_PER_CHAN_MAP",
		Opcode:  OpVSGetPerChanMap,
		Params:  []Field{U16("Handle"), U8("Is_Advertising")},
		Returns: []Field{U8("Status"), Raw("Channel_Map", 5)},
	},

	{
		Name:    "SET_SCAN_CH_MAP",
		Opcode:  OpVSSetScanChMap,
		Params:  []Field{U8("Channel_Map")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_EVENT_MASK",
		Opcode:  OpVSSetEventMask,
		Params:  []Field{Hex64("Event_Mask"), U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:    "ENA_ACL_SINK",
		Opcode:  OpVSEnaACLSink,
		Params:  []Field{U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:    "GENERATE_ACL",
		Opcode:  OpVSGenerateACL,
		Params:  []Field{U16("Connection_Handle"), U8("Packet_Length"), U16("Num_Packets")},
		Returns: statusOnly,
	},
	{
		Name:    "ENA_AUTO_GEN_ACL",
		Opcode:  OpVSEnaAutoGenACL,
		Params:  []Field{U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_TX_TEST_ERR_PATT",
		Opcode:  OpVSSetTxTestErrPatt,
		Params:  []Field{Hex32("Error_Pattern")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_CONN_OP_FLAGS",
		Opcode:  OpVSSetConnOpFlags,
		Params:  []Field{U16("Connection_Handle"), Hex32("Flags"), U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_P256_PRIV_KEY",
		Opcode:  OpVSSetP256PrivKey,
		Params:  []Field{Raw("Private_Key", 32)},
		Returns: statusOnly,
	},
	{
		Name:    "GET_ACL_TEST_REPORT",
		Opcode:  OpVSGetACLTestReport,
		Returns: testReportReturns,
	},
	{
		Name:    "SET_LOCAL_MIN_USED_CHAN",
		Opcode:  OpVSSetLocalMinUsedCh,
		Params:  []Field{U8("PHYs"), S8("Power_Threshold"), U8("Min_Used_Channels")},
		Returns: statusOnly,
	},
	{
		Name:    "GET_PEER_MIN_USED_CHAN",
		Opcode:  OpVSGetPeerMinUsedCh,
		Params:  []Field{U16("Connection_Handle")},
		Returns: []Field{U8("Status"), U8("PHY_1M"), U8("PHY_2M"), U8("PHY_Coded")},
	},
	{
		Name:    "VALIDATE_PUB_KEY_MODE",
		Opcode:  OpVSValidatePubKeyMode,
		Params:  []Field{U8("Mode")},
		Returns: statusOnly,
	},

	{
		Name:    "REG_WRITE",
		Opcode:  OpVSRegWrite,
		Params:  []Field{U8("Length"), Hex32("Address"), Tail("Value")},
		Returns: statusOnly,
	},
	{
		Name:    "REG_READ",
		Opcode:  OpVSRegRead,
		Params:  []Field{U8("Length"), Hex32("Address")},
		Returns: []Field{U8("Status"), Tail("Value")},
	},
	{
		Name:    "RESET_CONN_STATS",
		Opcode:  OpVSResetConnStats,
		Returns: statusOnly,
	},
	{
		Name:   "TX_TEST",
		Opcode: OpVSTxTest,
		Params: []Field{
			U8("TX_Channel"),
			U8("Test_Data_Length"),
			U8("Packet_Payload"),
			U8("PHY"),
			U16("Num_Packets"),
		},
		Returns: statusOnly,
	},
	{
		Name:    "RESET_TEST_STATS",
		Opcode:  OpVSResetTestStats,
		Returns: statusOnly,
	},
	{
		Name:   "RX_TEST",
		Opcode: OpVSRxTest,
		Params: []Field{
			U8("RX_Channel"),
			U8("PHY"),
			U8("Modulation_Index"),
			U16("Num_Packets"),
		},
		Returns: statusOnly,
	},
	{
		Name:    "GET_RSSI",
		Opcode:  OpVSGetRSSI,
		Params:  []Field{U8("Channel")},
		Returns: []Field{U8("Status"), S8("RSSI")},
	},
	{
		Name:    "BB_EN",
		Opcode:  OpVSBBEnable,
		Returns: statusOnly,
	},
	{
		Name:    "BB_DIS",
		Opcode:  OpVSBBDisable,
		Returns: statusOnly,
	},

	{
		Name:    "SET_BD_ADDR",
		Opcode:  OpVSSetBDAddr,
		Params:  []Field{Addr("BD_ADDR")},
		Returns: statusOnly,
	},
	{
		Name:    "GET_RAND_ADDR",
		Opcode:  OpVSGetRandAddr,
		Returns: []Field{U8("Status"), Addr("Random_Address")},
	},
	{
		Name:    "SET_LOCAL_FEAT",
		Opcode:  OpVSSetLocalFeat,
		Params:  []Field{Hex64("Features")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_OP_FLAGS",
		Opcode:  OpVSSetOpFlags,
		Params:  []Field{Hex32("Flags"), U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:   "GET_PDU_FILT_STATS",
		Opcode: OpVSGetPDUFiltStats,
		Returns: []Field{
			U8("Status"),
			U16("Fail_PDU"),
			U16("Pass_PDU"),
			U16("Fail_Whitelist"),
			U16("Pass_Whitelist"),
			U16("Fail_Peer_Addr_Match"),
			U16("Pass_Peer_Addr_Match"),
			U16("Fail_Local_Addr_Match"),
			U16("Pass_Local_Addr_Match"),
			U16("Fail_Peer_RPA_Verify"),
			U16("Pass_Peer_RPA_Verify"),
			U16("Fail_Local_RPA_Verify"),
			U16("Pass_Local_RPA_Verify"),
			U16("Fail_Peer_Priv_Addr"),
			U16("Fail_Local_Priv_Addr"),
			U16("Fail_Peer_Addr_Res_Req"),
			U16("Pass_Peer_Addr_Res_Req"),
			U16("Pass_Local_Addr_Res_Opt"),
			U16("Peer_Res_Addr_Pend"),
			U16("Local_Res_Addr_Pend"),
		},
	},
	{
		Name:    "SET_ADV_TX_PWR",
		Opcode:  OpVSSetAdvTxPower,
		Params:  []Field{S8("TX_Power")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_CONN_TX_PWR",
		Opcode:  OpVSSetConnTxPower,
		Params:  []Field{U16("Connection_Handle"), S8("TX_Power")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_ENC_MODE",
		Opcode:  OpVSSetEncMode,
		Params:  []Field{U8("Enable_Auth"), U8("Nonce_Mode"), U16("Connection_Handle")},
		Returns: statusOnly,
	},
	{
		Name:    "SET_CHAN_MAP",
		Opcode:  OpVSSetChanMap,
		Params:  []Field{U16("Connection_Handle"), Raw("Channel_Map", 5)},
		Returns: statusOnly,
	},
	{
		Name:    "SET_DIAG_MODE",
		Opcode:  OpVSSetDiagMode,
		Params:  []Field{U8("Enable")},
		Returns: statusOnly,
	},
	{
		Name:   "GET_SYS_STATS",
		Opcode: OpVSGetSysStats,
		Returns: []Field{
			U8("Status"),
			U16("Stack"),
			U16("Sys_Assert_Cnt"),
			U32("Free_Mem"),
			U32("Used_Mem"),
			U16("Max_Connections"),
			U16("Conn_Ctx_Size"),
			U16("CS_Watermark_Lvl"),
			U16("LL_Watermark_Lvl"),
			U16("Sch_Watermark_Lvl"),
			U16("LHCI_Watermark_Lvl"),
			U16("Max_Adv_Sets"),
			U16("Adv_Set_Ctx_Size"),
			U16("Ext_Scan_Max"),
			U16("Ext_Scan_Ctx_Size"),
			U16("Ext_Init_Ctx_Size"),
			U16("Max_Num_Ext_Init"),
			U16("Max_Per_Scanners"),
			U16("Per_Scan_Ctx_Size"),
			U16("Max_CIG"),
			U16("CIG_Ctx_Size"),
			U16("CIS_Ctx_Size"),
		},
	},
	{
		Name:   "GET_ADV_STATS",
		Opcode: OpVSGetAdvStats,
		Returns: []Field{
			U8("Status"),
			U32("TX_Adv"),
			U32("RX_Req"),
			U32("RX_Req_CRC"),
			U16("RX_Req_Timeout"),
			U32("TX_Resp"),
			U32("Err_Adv"),
			U16("RX_Setup"),
			U16("TX_Setup"),
			U16("RX_ISR"),
			U16("TX_ISR"),
		},
	},
	{
		Name:    "GET_SCAN_STATS",
		Opcode:  OpVSGetScanStats,
		Returns: scanStatsCommon,
	},
	{
		Name:    "GET_CONN_STATS",
		Opcode:  OpVSGetConnStats,
		Returns: dataStatsReturns,
	},
	{
		Name:    "GET_TEST_STATS",
		Opcode:  OpVSGetTestStats,
		Returns: dataStatsReturns,
	},
	{
		Name:   "GET_POOL_STATS",
		Opcode: OpVSGetPoolStats,
		Returns: []Field{
			U8("Status"),
			U8("Num_Pools"),
			Rep("Num_Pools",
				U16("Buf_Size"),
				U8("Num_Buf"),
				U8("Num_Alloc"),
				U8("Max_Alloc"),
				U16("Max_Req_Len"),
			),
		},
	},
}
